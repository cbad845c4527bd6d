// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scripture

import (
	"regexp"
	"strings"
)

// Cross-reference markers.
const (
	RefOpen  = `\xt `
	RefClose = `\xt*`
)

// StudyNoteLiterals are the hand-picked citations wrapped verbatim in
// study notes.
var StudyNoteLiterals = []string{
	"Exodus 3:14",
	"Luke 8:31",
	"Psalm 95",
	"Acts 25-26",
	"Judges 5",
	"Zechariah 8",
	"Exodus 34:6",
}

// KeyTermLiterals are the citations wrapped verbatim in dictionary
// entries.
var KeyTermLiterals = []string{
	"Exodus 3:14",
	"Luke 8:31",
	"Psalm 95",
	"Acts 25-26",
	"Judges 5",
	"Zechariah 8",
}

// rule rewrites every occurrence of a phrase or pattern in the text.
type rule interface {
	apply(text string) string
}

type literalRule struct {
	phrase, tagged string
}

func (r literalRule) apply(text string) string {
	return strings.ReplaceAll(text, r.phrase, r.tagged)
}

type patternRule struct {
	re   *regexp.Regexp
	repl string
}

func (r patternRule) apply(text string) string {
	return r.re.ReplaceAllString(text, r.repl)
}

// Tagger wraps Scripture citations in cross-reference markers. Rules run
// in a fixed order over the whole text and each sees the output of the
// previous ones, so tagging its own output again is not a no-op.
type Tagger struct {
	rules []rule
}

// NewTagger builds a tagger for the given literal list. The literals run
// first, followed by the "<Book> chapter N", "<Book> chapters N and M" and
// "book of <Book>" patterns for every name in Books.
func NewTagger(literals []string) *Tagger {
	rules := make([]rule, 0, len(literals)+3*len(Books))
	for _, lit := range literals {
		rules = append(rules, literalRule{phrase: lit, tagged: RefOpen + lit + RefClose})
	}
	for _, book := range Books {
		rules = append(rules, patternRule{
			re:   regexp.MustCompile(regexp.QuoteMeta(book) + ` chapter (\d+)`),
			repl: RefOpen + escapeRepl(book) + ` ${1}` + RefClose,
		})
	}
	for _, book := range Books {
		rules = append(rules, patternRule{
			re:   regexp.MustCompile(regexp.QuoteMeta(book) + ` chapters (\d+) and (\d+)`),
			repl: RefOpen + escapeRepl(book) + ` ${1}-${2}` + RefClose,
		})
	}
	for _, book := range Books {
		rules = append(rules, patternRule{
			re:   regexp.MustCompile(`book of ` + regexp.QuoteMeta(book)),
			repl: `book of ` + RefOpen + escapeRepl(book) + RefClose,
		})
	}
	return &Tagger{rules: rules}
}

// Tag applies every rule in order.
func (t *Tagger) Tag(text string) string {
	for _, r := range t.rules {
		text = r.apply(text)
	}
	return text
}

func escapeRepl(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
