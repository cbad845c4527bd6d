// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/usfm-notes/internal/resources"
	"github.com/pdiddy/usfm-notes/pkg/types"
)

// noteJSON builds a source document whose single block holds one
// paragraph of plain text.
func noteJSON(name, text string) string {
	return `{"referenceId": "1", "name": "` + name + `", "content": [
		{"tiptap": {"type": "doc", "content": [
			{"type": "paragraph", "content": [{"type": "text", "text": "` + text + `"}]}
		]}}
	]}`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStudyNoteEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Genesis_1_1_100.json", noteJSON("1:1", "See Genesis chapter 2 for details."))

	p := NewProcessor(types.VariantStudyNotes, resources.Map{})
	rec, err := p.Process(path)
	require.NoError(t, err)

	assert.Equal(t, `\im \bd 1:1\bd* See \xt Genesis 2\xt* for details.`+"\n", rec.Line)
	assert.Equal(t, "Genesis", rec.Book)
	assert.Equal(t, "GEN", rec.Code)
	assert.Equal(t, "1:1", rec.Reference)
	assert.Equal(t, "Genesis_1_1_100.json", rec.Source)
}

func TestProcessorBody(t *testing.T) {
	refs := resources.Map{"12": "Faith"}
	doc, err := types.DecodeSourceDocument([]byte(`{
		"referenceId": 5,
		"name": "Matthew 7:1-12",
		"content": [
			{"tiptap": {"content": [{"text": "Have "}, {"text": "faith", "marks": [
				{"type": "resourceReference", "attrs": {"resourceId": "12"}}
			]}]}},
			{"heading": "no payload here"},
			{"tiptap": null},
			{"tiptap": [{"text": " as in the book of Hebrews"}, {"text": " and Psalm 95."}]}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, types.ReferenceID("5"), doc.ReferenceID)

	p := NewProcessor(types.VariantStudyNotes, refs)
	assert.Equal(t,
		`Have \k faith\k* as in the book of \xt Hebrews\xt* and \xt Psalm 95\xt*.`,
		p.Body(doc))
}

func TestProcessKeyTerm(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "faith.json", `{"referenceId": "1", "name": "Faith", "content": [
		{"tiptap": {"content": [{"text": "Trust in God; see Exodus 34:6 and Hebrews chapters 11 and 12."}]}}
	]}`)

	p := NewProcessor(types.VariantKeyTerms, resources.Map{"1": "Faith"})
	rec, err := p.Process(path)
	require.NoError(t, err)

	assert.Equal(t, `\p \k Faith\k*\im Trust in God; see Exodus 34:6 and \xt Hebrews 11-12\xt*.`+"\n", rec.Line)
	assert.Equal(t, "Faith", rec.Reference)
	assert.Empty(t, rec.Book)
	assert.Empty(t, rec.Code)
}

func TestProcessErrors(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(types.VariantStudyNotes, nil)

	_, err := p.Process(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")

	bad := writeFile(t, dir, "John_1_1_9.json", `{"name": `)
	_, err = p.Process(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding document")

	wrongShape := writeFile(t, dir, "John_1_2_9.json", `{"name": "1:2", "content": {"tiptap": {}}}`)
	_, err = p.Process(wrongShape)
	require.Error(t, err)
}

func TestStudyNotesBatch(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "in")
	out := filepath.Join(tmp, "out", "nested")

	writeFile(t, in, "Matthew_7_1_12_132540.json", noteJSON("7:1-12", "Do not judge."))
	writeFile(t, in, "Matthew_5_3_132100.json", noteJSON("5:3", "Blessed are the poor."))
	writeFile(t, in, "1_Corinthians_13_4_9001.json", noteJSON("13:4", "Love is patient; see book of Ruth."))
	writeFile(t, in, "Matthew_6_9_132200.json", `{"name": `)
	writeFile(t, in, "notes.txt", "ignored")

	var log bytes.Buffer
	p := NewProcessor(types.VariantStudyNotes, resources.Map{})
	result, err := StudyNotes(p, types.StudyNotesConfig{InputDir: in, OutputDir: out}, Options{Manifest: true}, &log)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Converted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Outputs, 2)

	// Sources are read in filename order, so 1 Corinthians is seen first.
	assert.Equal(t, "1CO_StudyNotes.SFM", result.Outputs[0].File)
	assert.Equal(t, "MAT_StudyNotes.SFM", result.Outputs[1].File)
	assert.Equal(t, 2, result.Outputs[1].Records)

	mat := readFile(t, filepath.Join(out, "MAT_StudyNotes.SFM"))
	assert.Equal(t, StudyNotesHeader("MAT", "Matthew")+
		`\im \bd 5:3\bd* Blessed are the poor.`+"\n"+
		`\im \bd 7:1-12\bd* Do not judge.`+"\n", mat)

	cor := readFile(t, filepath.Join(out, "1CO_StudyNotes.SFM"))
	assert.True(t, strings.HasPrefix(cor, `\id 1CO - Biblica Study Notes`+"\n"))
	assert.Contains(t, cor, `\h 1 Corinthians Study Notes`)
	assert.Contains(t, cor, `\toc3 1 Corinthians`+"\n")
	assert.True(t, strings.HasSuffix(cor, `\im \bd 13:4\bd* Love is patient; see book of \xt Ruth\xt*.`+"\n"))

	assert.Equal(t, Digest([]byte(mat)), result.Outputs[1].BLAKE3)

	logged := log.String()
	assert.Contains(t, logged, "Found 4 study-notes documents to process")
	assert.Contains(t, logged, "Processing file 1/4")
	assert.Contains(t, logged, "failed:  Matthew_6_9_132200.json")
	assert.Contains(t, logged, "Batch summary: 3 converted, 1 failed (total: 4), 2 file(s) written")

	m, err := ReadManifest(filepath.Join(out, manifestFile))
	require.NoError(t, err)
	assert.Equal(t, types.VariantStudyNotes, m.Variant)
	assert.NotEmpty(t, m.RunID)
	assert.Equal(t, 3, m.Converted)
	assert.Equal(t, 1, m.Failed)
	assert.Equal(t, result.Outputs, m.Outputs)
}

func TestStudyNotesSortsByReference(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "in")
	out := filepath.Join(tmp, "out")

	// Filename order differs from reference-label order; labels sort as
	// strings, so "10:1" precedes "2:1".
	writeFile(t, in, "Mark_1_1_1.json", noteJSON("2:1", "second"))
	writeFile(t, in, "Mark_1_2_2.json", noteJSON("10:1", "first"))
	writeFile(t, in, "Mark_1_3_3.json", noteJSON("2:1", "a tie"))

	p := NewProcessor(types.VariantStudyNotes, nil)
	result, err := StudyNotes(p, types.StudyNotesConfig{InputDir: in, OutputDir: out}, Options{}, &bytes.Buffer{})
	require.NoError(t, err)

	var refs []string
	for _, r := range result.Records {
		refs = append(refs, r.Reference+" "+strings.TrimSpace(r.Line[strings.Index(r.Line, `\bd* `)+5:]))
	}
	assert.Equal(t, []string{"10:1 first", "2:1 a tie", "2:1 second"}, refs)

	_, err = os.Stat(filepath.Join(out, manifestFile))
	assert.True(t, os.IsNotExist(err), "manifest is opt-in")
}

func TestStudyNotesUnknownBooksShareFile(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "in")
	out := filepath.Join(tmp, "out")

	writeFile(t, in, "Apocrypha_1_1_1.json", noteJSON("1:1", "first unknown"))
	writeFile(t, in, "Tobit_1_1_2.json", noteJSON("1:1", "second unknown"))

	p := NewProcessor(types.VariantStudyNotes, nil)
	result, err := StudyNotes(p, types.StudyNotesConfig{InputDir: in, OutputDir: out}, Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, result.Outputs, 2)

	got := readFile(t, filepath.Join(out, "UNK_StudyNotes.SFM"))
	assert.Contains(t, got, `\h Tobit Study Notes`)
	assert.Contains(t, got, "second unknown")
	assert.NotContains(t, got, "first unknown")
}

func TestStudyNotesEmptyInput(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")

	p := NewProcessor(types.VariantStudyNotes, nil)
	result, err := StudyNotes(p, types.StudyNotesConfig{InputDir: filepath.Join(tmp, "missing"), OutputDir: out}, Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())
	assert.Empty(t, result.Outputs)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStudyNotesOutputDirFailure(t *testing.T) {
	tmp := t.TempDir()
	blocker := writeFile(t, tmp, "blocker", "file")

	p := NewProcessor(types.VariantStudyNotes, nil)
	_, err := StudyNotes(p, types.StudyNotesConfig{InputDir: tmp, OutputDir: filepath.Join(blocker, "out")}, Options{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}

func TestKeyTermsBatch(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "terms")
	outFile := filepath.Join(tmp, "dict", "BiblicaKeyTerms.sfm")

	writeFile(t, in, "b_grace.json", `{"referenceId": "2", "name": "Grace", "content": [
		{"tiptap": {"content": [{"text": "Unearned favor; compare "}, {"text": "faith", "marks": [
			{"type": "resourceReference", "attrs": {"resourceId": "1"}}
		]}]}}
	]}`)
	writeFile(t, in, "a_faith.json", `{"referenceId": "1", "name": "Faith", "content": [
		{"tiptap": {"content": [{"text": "Trust, as in Luke 8:31."}]}}
	]}`)
	writeFile(t, in, "c_broken.json", `not json`)

	refs, _, err := resources.Build(in, "*.json")
	require.NoError(t, err)

	var log bytes.Buffer
	p := NewProcessor(types.VariantKeyTerms, refs)
	result, err := KeyTerms(p, types.KeyTermsConfig{InputDir: in, OutputFile: outFile}, Options{Manifest: true}, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Failed)

	want := KeyTermsHeader +
		`\p \k Faith\k*\im Trust, as in \xt Luke 8:31\xt*.` + "\n" +
		`\p \k Grace\k*\im Unearned favor; compare \k faith\k*` + "\n"
	assert.Equal(t, want, readFile(t, outFile))

	m, err := ReadManifest(filepath.Join(tmp, "dict", "BiblicaKeyTerms.manifest.yaml"))
	require.NoError(t, err)
	assert.Equal(t, types.VariantKeyTerms, m.Variant)
	require.Len(t, m.Outputs, 1)
	assert.Equal(t, "BiblicaKeyTerms.sfm", m.Outputs[0].File)
	assert.Equal(t, 2, m.Outputs[0].Records)
}

func TestHeaders(t *testing.T) {
	h := StudyNotesHeader("JHN", "John")
	assert.True(t, strings.HasPrefix(h, "\\id JHN - Biblica Study Notes\n\\rem Copyright © 2023 by Biblica, Inc.\n"))
	assert.Contains(t, h, "\\mt1 John Study Notes\n\n\\periph Copyright Information\n\\mt Biblica Study Notes\n")
	assert.True(t, strings.HasSuffix(h, "legalcode.en\n\n"))

	assert.True(t, strings.HasPrefix(KeyTermsHeader, "\\id BD\n\\c 1\n\\ms Biblica Key Terms Dictionary\n\n\\periph"))
	assert.Contains(t, KeyTermsHeader, "\\mt Biblica Bible Dictionary\n")
}

func TestDigest(t *testing.T) {
	// BLAKE3-256 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))
	assert.Len(t, Digest([]byte("x")), 64)
}
