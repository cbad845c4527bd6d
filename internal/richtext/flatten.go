// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package richtext

import "strings"

// Key-term span markers.
const (
	KeyTermOpen  = `\k `
	KeyTermClose = `\k*`
)

// Resolver reports whether a resource id names a known key term.
type Resolver interface {
	Has(id string) bool
}

// Flatten renders node as text. Text leaves carrying a resourceReference
// mark whose id refs knows are wrapped as a key-term span; all other marks
// are ignored. A nil refs resolves nothing.
func Flatten(node Node, refs Resolver) string {
	var b strings.Builder
	write(&b, node, refs)
	return b.String()
}

func write(b *strings.Builder, node Node, refs Resolver) {
	switch n := node.(type) {
	case *TextLeaf:
		if n == nil {
			return
		}
		if isKeyTerm(n.Marks, refs) {
			b.WriteString(KeyTermOpen)
			b.WriteString(n.Text)
			b.WriteString(KeyTermClose)
			return
		}
		b.WriteString(n.Text)
	case *Container:
		if n == nil {
			return
		}
		for _, child := range n.Children {
			write(b, child, refs)
		}
	}
}

func isKeyTerm(marks []Mark, refs Resolver) bool {
	if refs == nil {
		return false
	}
	for _, m := range marks {
		if m.Type == MarkResourceReference && refs.Has(m.ResourceID) {
			return true
		}
	}
	return false
}
