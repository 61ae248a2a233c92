//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	gote "github.com/timburks/gote/types"
)

// A Window is the visible part of a buffer. Its offset is in screen
// cells: Rows is the first visible buffer row and Cols the first visible
// display column. The window holds no cursor of its own.
type Window struct {
	origin gote.Point
	size   gote.Size
	offset gote.Size
}

func NewWindow() *Window {
	return &Window{}
}

func (w *Window) GetOffset() gote.Size {
	return w.offset
}

// Layout places the text area of the window on the screen.
func (w *Window) Layout(origin gote.Point, size gote.Size) {
	w.origin = origin
	if size.Rows < 1 {
		size.Rows = 1
	}
	if size.Cols < 1 {
		size.Cols = 1
	}
	w.size = size
}

// Recompute scrolls by the smallest amount that keeps the cursor visible.
func (w *Window) Recompute(c *Cursor, b *Buffer, size gote.Size) {
	w.Layout(w.origin, size)
	x := DisplayColumn(b.lines[c.Row].Text, c.Col)
	if c.Row < w.offset.Rows {
		// scroll up
		w.offset.Rows = c.Row
	}
	if c.Row-w.offset.Rows >= w.size.Rows {
		// scroll down
		w.offset.Rows = c.Row - w.size.Rows + 1
	}
	if x < w.offset.Cols {
		// scroll left
		w.offset.Cols = x
	}
	if x-w.offset.Cols >= w.size.Cols {
		// scroll right
		w.offset.Cols = x - w.size.Cols + 1
	}
}

// ToScreen converts a cursor position to screen coordinates.
func (w *Window) ToScreen(c *Cursor, b *Buffer) gote.Point {
	x := DisplayColumn(b.lines[c.Row].Text, c.Col)
	return gote.Point{
		Row: c.Row - w.offset.Rows + w.origin.Row,
		Col: x - w.offset.Cols + w.origin.Col,
	}
}

// draw the visible rows of b; rows past the end of the buffer show a tilde
func (w *Window) Render(display gote.Display, b *Buffer) {
	for i := 0; i < w.size.Rows; i++ {
		var line []byte
		if row := i + w.offset.Rows; row < len(b.lines) {
			line = b.lines[row].DisplayText()
			if w.offset.Cols < len(line) {
				line = line[w.offset.Cols:]
			} else {
				line = nil
			}
		} else {
			line = []byte("~")
		}
		// truncate line to fit screen
		if len(line) > w.size.Cols {
			line = line[0:w.size.Cols]
		}
		for j, c := range line {
			display.SetCell(j+w.origin.Col, i+w.origin.Row, rune(c), gote.StyleNormal)
		}
	}
}

// RenderInfoBar draws the status line for b on the given screen row.
func (w *Window) RenderInfoBar(display gote.Display, row int, b *Buffer, c *Cursor) {
	text := w.computeInfoBarText(w.size.Cols, b, c)
	x := w.origin.Col
	for _, ch := range text {
		display.SetCell(x, row, ch, gote.StyleReversed)
		x += runewidth.RuneWidth(ch)
	}
}

// Compute the text to display on the info bar.
func (w *Window) computeInfoBarText(length int, b *Buffer, c *Cursor) string {
	finalText := fmt.Sprintf(" %d/%d ", c.Row+1, b.GetRowCount())
	text := fmt.Sprintf(" %s [%d lines]", b.GetName(), b.GetRowCount())
	if b.Dirty() {
		text += " (modified)"
	}
	room := length - runewidth.StringWidth(finalText)
	if room < 0 {
		return runewidth.Truncate(finalText, length, "")
	}
	text = runewidth.Truncate(text, room, "…")
	return runewidth.FillRight(text, room) + finalText
}
