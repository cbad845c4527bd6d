// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Variant selects which output form a conversion run produces.
type Variant string

const (
	VariantStudyNotes Variant = "study-notes"
	VariantKeyTerms   Variant = "key-terms"
)

// Record is one rendered USFM line together with the labels used to
// group and order it.
type Record struct {
	// Book is the full book name recovered from the source filename
	// (e.g. "1 Corinthians"). Empty for key-term entries.
	Book string `json:"book,omitempty" yaml:"book,omitempty"`

	// Code is the three-letter USFM book code, or "UNK".
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// Reference is the note's reference label or the key term.
	Reference string `json:"reference" yaml:"reference"`

	// Line is the rendered USFM, terminated by a newline.
	Line string `json:"line" yaml:"line"`

	// Source is the base name of the file the record came from.
	Source string `json:"source" yaml:"source"`
}

// Less orders records by reference label, then by rendered line.
func (r Record) Less(o Record) bool {
	if r.Reference != o.Reference {
		return r.Reference < o.Reference
	}
	return r.Line < o.Line
}
