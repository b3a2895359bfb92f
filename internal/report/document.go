// Package report turns transactions into monthly, annual and custom range
// documents and renders them to PDF.
//
// Building and rendering are separate steps. A Document is a flat list of
// blocks (text lines, headings, tables, page breaks) that the renderer lays out
// top to bottom with a running vertical cursor.
package report

import (
	"errors"
	"time"
)

var (
	ErrInvalidMonth     = errors.New("report: month out of range")
	ErrInvalidYear      = errors.New("report: year out of range")
	ErrInvalidDateRange = errors.New("report: from date is after to date")
	ErrEmptyDocument    = errors.New("report: document has no content")
)

type Kind string

const (
	KindMonthly Kind = "monthly"
	KindAnnual  Kind = "annual"
	KindCustom  Kind = "custom"
)

const (
	AlignLeft  = "L"
	AlignRight = "R"
)

type Column struct {
	Header string
	Width  float64
	Align  string
}

type Table struct {
	Name     string
	Columns  []Column
	Rows     [][]string
	FontSize float64
}

type BlockKind int

const (
	BlockText BlockKind = iota
	BlockHeading
	BlockTable
	BlockPageBreak
	BlockSpace
)

type Block struct {
	Kind     BlockKind
	Text     string
	FontSize float64
	Height   float64
	Table    *Table
	// KeepWithNext keeps the block on the same page as the start of the next one.
	KeepWithNext bool
}

type Document struct {
	Kind     Kind
	Title    string
	Filename string
	Blocks   []Block
}

// Meta is the context shared by every report kind.
type Meta struct {
	WorkplaceName string
	UserLabel     string
	GeneratedAt   time.Time
	Dates         DateFormatter
}

func (d *Document) Table(name string) *Table {
	for _, b := range d.Blocks {
		if b.Kind == BlockTable && b.Table.Name == name {
			return b.Table
		}
	}
	return nil
}

func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if b.Kind == BlockTable {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// RowCount is the number of body rows in the named table, zero when it is absent.
func (d *Document) RowCount(name string) int {
	if t := d.Table(name); t != nil {
		return len(t.Rows)
	}
	return 0
}

func (d *Document) text(s string, size float64) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockText, Text: s, FontSize: size})
}

func (d *Document) heading(s string, size float64) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockHeading, Text: s, FontSize: size})
}

func (d *Document) table(t *Table) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockTable, Table: t})
}

func (d *Document) space(h float64) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockSpace, Height: h})
}

func (d *Document) keepWithNext() {
	if n := len(d.Blocks); n > 0 {
		d.Blocks[n-1].KeepWithNext = true
	}
}

func (d *Document) pageBreak() {
	d.Blocks = append(d.Blocks, Block{Kind: BlockPageBreak})
}
