package pdf

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	leftMargin   = 50.0
	rightMargin  = 50.0
	topMargin    = 50.0
	bottomMargin = 50.0

	titleFontSize   = 18.0
	headingFontSize = 14.0
	bodyFontSize    = 12.0

	lineAdvance    = 15.0
	headingAdvance = 20.0
	titleAdvance   = 30.0

	bodyIndent = 10.0
)

type (
	// Section is a heading followed by its body lines. An empty heading
	// renders the lines without a header, used for lead-in info lines.
	Section struct {
		Heading string
		Lines   []string
	}

	Renderer interface {
		Render(title string, sections []Section) ([]byte, error)
	}

	renderer struct {
		compress bool
	}
)

func NewRenderer() Renderer {
	return &renderer{compress: true}
}

func (r *renderer) Render(title string, sections []Section) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(r.compress)
	// Fixed creation date keeps output byte-identical for identical input.
	doc.SetCreationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	_, pageHeight := doc.GetPageSize()
	usableWidth := r.usableWidth(doc)
	bottom := pageHeight - bottomMargin

	// Title is drawn once, on the first page only.
	y := topMargin
	doc.SetFont("Helvetica", "B", titleFontSize)
	doc.Text(leftMargin, y, title)
	y += titleAdvance

	for _, section := range sections {
		if section.Heading != "" {
			doc.SetFont("Helvetica", "B", headingFontSize)
			doc.Text(leftMargin, y, section.Heading)
			y = r.advance(doc, y, headingAdvance, bottom)
		}

		doc.SetFont("Helvetica", "", bodyFontSize)
		for _, line := range section.Lines {
			for _, wrapped := range wrapText(doc, line, usableWidth) {
				doc.Text(leftMargin+bodyIndent, y, wrapped)
				y = r.advance(doc, y, lineAdvance, bottom)
			}
		}
		y = r.advance(doc, y, headingAdvance, bottom)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// advance moves the cursor down and opens a fresh page when it passes the
// bottom margin, re-establishing the body font for the new page.
func (r *renderer) advance(doc *gofpdf.Fpdf, y, delta, bottom float64) float64 {
	y += delta
	if y > bottom {
		doc.AddPage()
		doc.SetFont("Helvetica", "", bodyFontSize)
		y = topMargin
	}
	return y
}

func (r *renderer) usableWidth(doc *gofpdf.Fpdf) float64 {
	pageWidth, _ := doc.GetPageSize()
	return pageWidth - leftMargin - rightMargin
}

// wrapText greedily wraps text so no emitted line exceeds maxWidth in the
// current font. A single word wider than maxWidth is placed on its own line
// unsplit.
func wrapText(doc *gofpdf.Fpdf, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := strings.TrimSpace(current + " " + word)
		if doc.GetStringWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
