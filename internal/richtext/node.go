// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package richtext models TipTap rich-text trees and flattens them into
// USFM text.
//
// Parsing is lenient: any JSON shape yields a Node, and shapes that are
// neither a text leaf nor a container become Unknown, which flattens to
// the empty string.
package richtext

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarkResourceReference is the mark type that links a text span to a
// key-term document.
const MarkResourceReference = "resourceReference"

// Node is one of *TextLeaf, *Container or Unknown.
type Node interface {
	node()
}

// TextLeaf is a run of text with optional marks.
type TextLeaf struct {
	Text  string
	Marks []Mark
}

// Container holds child nodes in document order. It carries no text of
// its own.
type Container struct {
	Children []Node
}

// Unknown stands in for any shape that is not a leaf or a container.
type Unknown struct{}

func (*TextLeaf) node()  {}
func (*Container) node() {}
func (Unknown) node()    {}

// Mark is an annotation on a TextLeaf. ResourceID is only populated for
// resourceReference marks.
type Mark struct {
	Type       string
	ResourceID string
}

// Parse decodes raw JSON into a Node. It never fails: invalid JSON and
// unrecognized shapes produce Unknown.
func Parse(raw []byte) Node {
	if len(raw) == 0 {
		return Unknown{}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Unknown{}
	}
	return FromValue(v)
}

// FromValue builds a Node from a generic JSON value as produced by
// encoding/json decoding into an any, with or without UseNumber.
func FromValue(v any) Node {
	switch t := v.(type) {
	case map[string]any:
		if raw, ok := t["text"]; ok {
			text, ok := raw.(string)
			if !ok {
				return Unknown{}
			}
			return &TextLeaf{Text: text, Marks: marksFrom(t["marks"])}
		}
		if raw, ok := t["content"]; ok {
			if items, ok := raw.([]any); ok {
				return containerOf(items)
			}
		}
		return Unknown{}
	case []any:
		return containerOf(t)
	default:
		return Unknown{}
	}
}

func containerOf(items []any) *Container {
	c := &Container{Children: make([]Node, 0, len(items))}
	for _, item := range items {
		c.Children = append(c.Children, FromValue(item))
	}
	return c
}

func marksFrom(v any) []Mark {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	marks := make([]Mark, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		mark := Mark{}
		mark.Type, _ = m["type"].(string)
		if attrs, ok := m["attrs"].(map[string]any); ok {
			mark.ResourceID = idString(attrs["resourceId"])
		}
		marks = append(marks, mark)
	}
	return marks
}

// idString normalizes a resourceId attribute. Numbers are written the way
// they appear in the referenceId field of key-term documents.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
