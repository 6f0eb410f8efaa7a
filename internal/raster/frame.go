package raster

import "strings"

// frame is the rune canvas the draw passes paint into: one rune per pixel column/row, addressed
// by absolute pixel coordinate, per SPEC_FULL.md §4.8. Unwritten cells default to a space.
type frame struct {
	rows [][]rune
	w, h int
}

func newFrame(w, h int) *frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	rows := make([][]rune, h)
	for y := range rows {
		row := make([]rune, w)
		for x := range row {
			row[x] = ' '
		}
		rows[y] = row
	}
	return &frame{rows: rows, w: w, h: h}
}

// set writes r at (x,y), silently discarding writes outside the frame: a label or glyph computed
// from a rounded/truncated float position can land one column short or past the edge.
func (f *frame) set(x, y int, r rune) {
	if x < 0 || y < 0 || y >= f.h || x >= f.w {
		return
	}
	f.rows[y][x] = r
}

func (f *frame) get(x, y int) rune {
	if x < 0 || y < 0 || y >= f.h || x >= f.w {
		return ' '
	}
	return f.rows[y][x]
}

// String renders f as trimmed text: trailing whitespace stripped from every row, trailing blank
// rows dropped, one trailing newline, per §4.8's "Trimming" step.
func (f *frame) String() string {
	lines := make([]string, f.h)
	for y, row := range f.rows {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	if end == 0 {
		return ""
	}
	return strings.Join(lines[:end], "\n") + "\n"
}
