package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageCount counts page objects in the PDF output. "/Type /Pages" (the page
// tree root) also matches the "/Type /Page" prefix, so it is subtracted out.
func pageCount(out []byte) int {
	return bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages"))
}

func TestRenderSinglePage(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("Pancakes", []Section{
		{Heading: "Ingredients:", Lines: []string{"- flour", "- milk"}},
		{Heading: "Steps:", Lines: []string{"1. Mix everything", "2. Fry"}},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 1, pageCount(out))
}

func TestRenderDeterministic(t *testing.T) {
	r := NewRenderer()
	sections := []Section{
		{Lines: []string{"Received: 2024-05-01 10:00:00"}},
		{Heading: "Ingredients:", Lines: []string{"- sugar", "- butter"}},
	}

	first, err := r.Render("JSON Report #3", sections)
	require.NoError(t, err)
	second, err := r.Render("JSON Report #3", sections)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderPaginatesLongContent(t *testing.T) {
	r := &renderer{compress: false}

	lines := make([]string, 200)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%03d", i)
	}

	out, err := r.Render("Long Report", []Section{{Lines: lines}})
	require.NoError(t, err)

	// Page 1 fits 46 body lines under the title, every following page 48.
	assert.Equal(t, 5, pageCount(out))

	// Every line must appear exactly once, in submission order.
	last := -1
	for i := range lines {
		marker := []byte(fmt.Sprintf("(line-%03d)", i))
		require.Equal(t, 1, bytes.Count(out, marker), "line %d", i)
		pos := bytes.Index(out, marker)
		require.Greater(t, pos, last, "line %d out of order", i)
		last = pos
	}
}

func newMeasureDoc() *gofpdf.Fpdf {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", bodyFontSize)
	return doc
}

func TestWrapTextGreedy(t *testing.T) {
	doc := newMeasureDoc()
	maxWidth := 120.0

	lines := wrapText(doc, "a greedy wrapper packs as many words as fit on each line", maxWidth)
	require.Greater(t, len(lines), 1)

	for i, line := range lines {
		assert.LessOrEqual(t, doc.GetStringWidth(line), maxWidth, "line %d too wide", i)
	}

	// The first word of each continuation line must not have fit on the
	// previous line, otherwise the wrap was not greedy.
	for i := 1; i < len(lines); i++ {
		firstWord := strings.Fields(lines[i])[0]
		candidate := lines[i-1] + " " + firstWord
		assert.Greater(t, doc.GetStringWidth(candidate), maxWidth)
	}
}

func TestWrapTextOverlongWord(t *testing.T) {
	doc := newMeasureDoc()

	word := "supercalifragilisticexpialidocious-supercalifragilisticexpialidocious"
	lines := wrapText(doc, "tiny "+word, 60)

	require.Equal(t, []string{"tiny", word}, lines)
}

func TestWrapTextEmpty(t *testing.T) {
	doc := newMeasureDoc()

	assert.Equal(t, []string{""}, wrapText(doc, "", 100))
	assert.Equal(t, []string{""}, wrapText(doc, "   ", 100))
}

func TestFlatSectionObjectSortsKeys(t *testing.T) {
	section := FlatSection(map[string]any{
		"zeta":  "last",
		"alpha": float64(1),
		"mid":   map[string]any{"inner": true},
	})

	assert.Equal(t, []string{
		"alpha: 1",
		`mid: {"inner":true}`,
		"zeta: last",
	}, section.Lines)
}

func TestFlatSectionArrayAndScalar(t *testing.T) {
	section := FlatSection([]any{"one", float64(2), nil})
	assert.Equal(t, []string{"0: one", "1: 2", "2: null"}, section.Lines)

	assert.Equal(t, []string{"42"}, FlatSection(float64(42)).Lines)
	assert.Equal(t, []string{"null"}, FlatSection(nil).Lines)
}
