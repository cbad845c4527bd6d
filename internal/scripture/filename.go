// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scripture

import (
	"path/filepath"
	"strings"
)

// ParseFilename recovers the book name and reference from a study note
// filename of the form <Book>[_<Book>]_<Ref...>_<ID>.<ext>.
//
// A leading all-digit segment is the number of a numbered book, so
// "1_Corinthians_7_1_12_99999.json" yields ("1 Corinthians", "7:1:12").
// The final segment (document id and extension) is dropped and the
// remaining segments are joined with colons.
func ParseFilename(name string) (book, reference string) {
	parts := strings.Split(filepath.Base(name), "_")

	var refParts []string
	if isDigits(parts[0]) && len(parts) > 1 {
		book = parts[0] + " " + parts[1]
		refParts = dropLast(parts[2:])
	} else {
		book = parts[0]
		refParts = dropLast(parts[1:])
	}
	return book, strings.Join(refParts, ":")
}

func dropLast(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	return parts[:len(parts)-1]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
