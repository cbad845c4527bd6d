// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SourceDocument is one exported study note or key-term document.
// Content blocks keep their TipTap payloads undecoded; the richtext
// package parses them leniently at flatten time.
type SourceDocument struct {
	// ReferenceID is the identifier other documents use in
	// resourceReference marks.
	ReferenceID ReferenceID `json:"referenceId"`

	// Name is the reference label for a study note ("Matthew 7:1-12") or
	// the term for a key-term entry ("Faith").
	Name string `json:"name"`

	// Content lists the document's blocks in display order.
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one entry of SourceDocument.Content. TipTap is nil when
// the block carries no rich-text payload.
type ContentBlock struct {
	TipTap json.RawMessage `json:"tiptap,omitempty"`
}

// HasTipTap reports whether the block carried a "tiptap" key, including an
// explicit null.
func (b ContentBlock) HasTipTap() bool {
	return b.TipTap != nil
}

// ReferenceID is a document identifier. The export writes it as either a
// JSON string or a number; both decode to the decimal text. Null decodes
// to the empty string.
type ReferenceID string

// UnmarshalJSON implements json.Unmarshaler.
func (r *ReferenceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ReferenceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("referenceId must be a string or number, got %s", data)
	}
	*r = ReferenceID(n.String())
	return nil
}

// DecodeSourceDocument parses one source document.
func DecodeSourceDocument(data []byte) (*SourceDocument, error) {
	var doc SourceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}
