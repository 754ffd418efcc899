package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/headless/pkg/backend"
	"github.com/odvcencio/headless/pkg/geometry"
)

// Cell is a single character cell.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Buffer is the 2D cell grid widgets render into before it is flushed to
// the backend. Changed cells are tracked so flushes stay partial.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirty      []bool
	dirtyCount int
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes dimensions, preserving content that still fits.
func (b *Buffer) Resize(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	cells := make([]Cell, w*h)
	for y := 0; y < min(h, b.height); y++ {
		for x := 0; x < min(w, b.width); x++ {
			cells[y*w+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = cells
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	b.MarkAllDirty()
}

// Get returns the cell at (x, y), or a blank cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a cell, marking it dirty only on actual change.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	next := Cell{Rune: r, Style: s}
	if b.cells[idx] != next {
		b.cells[idx] = next
		b.markDirty(idx)
	}
}

// SetString writes a string starting at (x, y), advancing by display
// width so wide runes occupy two columns. Clips to the buffer.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) {
	if y < 0 || y >= b.height {
		return
	}
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= b.width {
			break
		}
		b.Set(col, y, r, style)
		// Blank the shadowed cell of a wide rune.
		if w == 2 && col+1 < b.width {
			b.Set(col+1, y, ' ', style)
		}
		col += w
	}
}

// Fill fills a region with a rune and style, clipped to the buffer.
func (b *Buffer) Fill(r geometry.Rect, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// Clear fills the whole buffer with blanks.
func (b *Buffer) Clear() {
	b.Fill(geometry.NewRect(0, 0, b.width, b.height), ' ', backend.DefaultStyle())
}

// DrawBox draws a rounded border around r.
func (b *Buffer) DrawBox(r geometry.Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	b.Set(r.X, r.Y, '╭', s)
	b.Set(r.X+r.Width-1, r.Y, '╮', s)
	b.Set(r.X, r.Y+r.Height-1, '╰', s)
	b.Set(r.X+r.Width-1, r.Y+r.Height-1, '╯', s)
	for x := r.X + 1; x < r.X+r.Width-1; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, r.Y+r.Height-1, '─', s)
	}
	for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(r.X+r.Width-1, y, '│', s)
	}
}

// IsDirty reports whether any cell changed since the last ClearDirty.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of changed cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// MarkAllDirty forces a full flush.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
}

// ClearDirty resets dirty tracking after a flush.
func (b *Buffer) ClearDirty() {
	for i := range b.dirty {
		b.dirty[i] = false
	}
	b.dirtyCount = 0
}

// ForEachDirtyCell visits every changed cell.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	for idx, d := range b.dirty {
		if d {
			fn(idx%b.width, idx/b.width, b.cells[idx])
		}
	}
}

func (b *Buffer) markDirty(idx int) {
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.dirtyCount++
	}
}
