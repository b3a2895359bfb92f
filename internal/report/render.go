package report

import (
	"bytes"
	"fmt"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 15.0
	footerHeight = 10.0
	cellPadding  = 1.5
)

var (
	headerFill = [3]int{66, 139, 202}
	stripeFill = [3]int{245, 245, 245}
)

// Output is a rendered document ready to be saved or sent.
type Output struct {
	Filename string
	Data     []byte
	Pages    int
}

type renderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	bottom float64
	// starts holds the page each block opened on, by block index
	starts []int
	opened int
}

// Render lays out doc on A4 pages. Nothing is returned unless the whole document
// rendered without error.
func Render(doc *Document) (*Output, error) {
	if doc == nil || len(doc.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	r := newRenderer(doc.Title)
	if err := r.draw(doc.Blocks); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}

	return &Output{
		Filename: doc.Filename,
		Data:     buf.Bytes(),
		Pages:    r.pdf.PageCount(),
	}, nil
}

func newRenderer(title string) *renderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("FinTrack", true)
	pdf.AliasNbPages("")

	r := &renderer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	_, pageHeight := pdf.GetPageSize()
	r.bottom = pageHeight - pageMargin - footerHeight

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	return r
}

func (r *renderer) draw(blocks []Block) error {
	r.pdf.AddPage()
	r.starts = make([]int, len(blocks))

	for i, b := range blocks {
		if b.KeepWithNext && (i == 0 || !blocks[i-1].KeepWithNext) {
			r.ensure(keepHeight(blocks[i:]))
		}

		r.opened = 0
		switch b.Kind {
		case BlockHeading:
			r.line(b.Text, "B", b.FontSize)
		case BlockText:
			r.line(b.Text, "", b.FontSize)
		case BlockSpace:
			r.space(b.Height)
		case BlockPageBreak:
			r.pdf.AddPage()
		case BlockTable:
			r.table(b.Table)
		}
		r.starts[i] = r.opened
		if r.opened == 0 {
			r.starts[i] = r.pdf.PageNo()
		}

		if r.pdf.Err() {
			return r.pdf.Error()
		}
	}
	return nil
}

func lineHeight(fontSize float64) float64 {
	return fontSize*0.45 + cellPadding
}

func tableFontSize(t *Table) float64 {
	if t.FontSize == 0 {
		return 10
	}
	return t.FontSize
}

// keepHeight is the room a chain of KeepWithNext blocks needs, up to and including
// the opening of the block that ends it. A table opens with its header and first row.
func keepHeight(blocks []Block) float64 {
	var h float64
	for _, b := range blocks {
		switch b.Kind {
		case BlockHeading, BlockText:
			h += lineHeight(b.FontSize)
		case BlockSpace:
			h += b.Height
		case BlockTable:
			h += 2 * lineHeight(tableFontSize(b.Table))
		}
		if !b.KeepWithNext {
			break
		}
	}
	return h
}

// ensure starts a new page when h more millimetres would cross the printable bottom.
func (r *renderer) ensure(h float64) bool {
	if r.pdf.GetY()+h > r.bottom {
		r.pdf.AddPage()
		return true
	}
	return false
}

func (r *renderer) line(text, style string, size float64) {
	h := lineHeight(size)
	r.ensure(h)
	r.opened = r.pdf.PageNo()
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.CellFormat(0, h, r.tr(text), "", 1, AlignLeft, false, 0, "")
}

func (r *renderer) space(h float64) {
	if r.ensure(h) {
		return
	}
	r.pdf.SetY(r.pdf.GetY() + h)
}

func (r *renderer) table(t *Table) {
	size := tableFontSize(t)
	h := lineHeight(size)

	r.ensure(2 * h)
	r.opened = r.pdf.PageNo()
	r.tableHeader(t, size, h)

	for i, row := range t.Rows {
		if r.ensure(h) {
			r.tableHeader(t, size, h)
		}

		r.pdf.SetFont("Helvetica", "", size)
		r.pdf.SetTextColor(0, 0, 0)
		r.pdf.SetFillColor(stripeFill[0], stripeFill[1], stripeFill[2])
		r.pdf.SetX(pageMargin)
		for j, col := range t.Columns {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			r.pdf.CellFormat(col.Width, h, r.fit(cell, col.Width), "", 0, col.Align, i%2 == 1, 0, "")
		}
		r.pdf.Ln(h)
	}
}

func (r *renderer) tableHeader(t *Table, size, h float64) {
	r.pdf.SetFont("Helvetica", "B", size)
	r.pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetX(pageMargin)
	for _, col := range t.Columns {
		r.pdf.CellFormat(col.Width, h, r.tr(col.Header), "", 0, col.Align, true, 0, "")
	}
	r.pdf.Ln(h)
}

// fit shortens s until it fits inside a cell of width w and returns it translated
// to the page encoding.
func (r *renderer) fit(s string, w float64) string {
	limit := w - 2*cellPadding
	if r.pdf.GetStringWidth(r.tr(s)) <= limit {
		return r.tr(s)
	}
	runes := []rune(s)
	for len(runes) > 0 && r.pdf.GetStringWidth(r.tr(string(runes)+"...")) > limit {
		runes = runes[:len(runes)-1]
	}
	return r.tr(string(runes) + "...")
}
