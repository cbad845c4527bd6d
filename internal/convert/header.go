// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

// copyrightBlock closes every header. title names the collection.
func copyrightBlock(title string) string {
	return `\periph Copyright Information
\mt ` + title + `
\pc Copyright © 2023 Biblica, Inc.
\pc https://www.biblica.com/
\pc Licensed under CC BY-SA 4.0 license
\pc https://creativecommons.org/licenses/by-sa/4.0/legalcode.en

`
}

// StudyNotesHeader returns the USFM preamble for one book of study notes.
func StudyNotesHeader(code, book string) string {
	return fmt.Sprintf(`\id %[1]s - Biblica Study Notes
\rem Copyright © 2023 by Biblica, Inc.
\h %[2]s Study Notes
\toc1 %[2]s Study Notes
\toc2 %[2]s Study Notes
\toc3 %[2]s
\mt1 %[2]s Study Notes

`, code, book) + copyrightBlock("Biblica Study Notes")
}

// KeyTermsHeader is the USFM preamble for the key-terms dictionary.
var KeyTermsHeader = `\id BD
\c 1
\ms Biblica Key Terms Dictionary

` + copyrightBlock("Biblica Bible Dictionary")
