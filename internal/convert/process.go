// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/usfm-notes/internal/richtext"
	"github.com/pdiddy/usfm-notes/internal/scripture"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

// Processor renders single source documents. It holds the read-only
// resource map and the tagger for one output variant.
type Processor struct {
	variant types.Variant
	refs    richtext.Resolver
	tagger  *scripture.Tagger
}

// NewProcessor returns a Processor for variant. refs resolves
// resourceReference marks; it must be fully built before any document is
// processed.
func NewProcessor(variant types.Variant, refs richtext.Resolver) *Processor {
	literals := scripture.StudyNoteLiterals
	if variant == types.VariantKeyTerms {
		literals = scripture.KeyTermLiterals
	}
	return &Processor{
		variant: variant,
		refs:    refs,
		tagger:  scripture.NewTagger(literals),
	}
}

// Variant returns the output variant the processor renders.
func (p *Processor) Variant() types.Variant { return p.variant }

// Body flattens every rich-text block of doc in order and tags the
// citations in the result.
func (p *Processor) Body(doc *types.SourceDocument) string {
	var b strings.Builder
	for _, block := range doc.Content {
		if !block.HasTipTap() {
			continue
		}
		b.WriteString(richtext.Flatten(richtext.Parse(block.TipTap), p.refs))
	}
	return p.tagger.Tag(b.String())
}

// Process reads the document at path and renders it for the processor's
// variant.
func (p *Processor) Process(path string) (types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Record{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := types.DecodeSourceDocument(data)
	if err != nil {
		return types.Record{}, err
	}

	base := filepath.Base(path)
	if p.variant == types.VariantKeyTerms {
		return types.Record{
			Reference: doc.Name,
			Line:      RenderKeyTerm(doc.Name, p.Body(doc)),
			Source:    base,
		}, nil
	}

	book, _ := scripture.ParseFilename(base)
	return types.Record{
		Book:      book,
		Code:      scripture.BookCode(book),
		Reference: doc.Name,
		Line:      RenderStudyNote(doc.Name, p.Body(doc)),
		Source:    base,
	}, nil
}

// RenderStudyNote formats one study note line: the bold reference label
// followed by the body.
func RenderStudyNote(reference, body string) string {
	return `\im \bd ` + reference + `\bd* ` + body + "\n"
}

// RenderKeyTerm formats one dictionary entry line.
func RenderKeyTerm(term, body string) string {
	return `\p ` + richtext.KeyTermOpen + term + richtext.KeyTermClose + `\im ` + body + "\n"
}
