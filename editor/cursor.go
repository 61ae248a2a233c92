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
	gote "github.com/timburks/gote/types"
)

// A Cursor is an edit position in a Buffer.
//
// Row and Col are stored coordinates: Col may equal the row length.
// Sticky is the display column the user last chose with a horizontal
// move. Vertical moves land on the column nearest Sticky and never
// change it, so passing through a short line does not lose the position.
type Cursor struct {
	Row    int
	Col    int
	Sticky int
}

func (c *Cursor) Point() gote.Point {
	return gote.Point{Row: c.Row, Col: c.Col}
}

// SetPosition places the cursor and records its column as the horizontal intent.
func (c *Cursor) SetPosition(b *Buffer, p gote.Point) {
	c.Row = p.Row
	c.Col = p.Col
	c.ClampTo(b)
	c.remember(b)
}

func (c *Cursor) remember(b *Buffer) {
	c.Sticky = DisplayColumn(b.lines[c.Row].Text, c.Col)
}

func (c *Cursor) MoveLeft(b *Buffer) {
	if c.Col > 0 {
		c.Col--
	}
	c.remember(b)
}

func (c *Cursor) MoveRight(b *Buffer) {
	if c.Col < b.GetRowLength(c.Row) {
		c.Col++
	}
	c.remember(b)
}

func (c *Cursor) MoveUp(b *Buffer) {
	if c.Row > 0 {
		c.Row--
		c.Col = ColumnForDisplay(b.lines[c.Row].Text, c.Sticky)
	}
}

func (c *Cursor) MoveDown(b *Buffer) {
	if c.Row < b.GetRowCount()-1 {
		c.Row++
		c.Col = ColumnForDisplay(b.lines[c.Row].Text, c.Sticky)
	}
}

func (c *Cursor) MoveToBeginningOfLine(b *Buffer) {
	c.Col = 0
	c.remember(b)
}

func (c *Cursor) MoveToEndOfLine(b *Buffer) {
	c.Col = b.GetRowLength(c.Row)
	c.remember(b)
}

// Move applies one of the gote.Move directions.
func (c *Cursor) Move(b *Buffer, direction int) {
	switch direction {
	case gote.MoveLeft:
		c.MoveLeft(b)
	case gote.MoveRight:
		c.MoveRight(b)
	case gote.MoveUp:
		c.MoveUp(b)
	case gote.MoveDown:
		c.MoveDown(b)
	}
}

// ClampTo pulls the cursor back inside the buffer after a mutation.
// The sticky column is left alone.
func (c *Cursor) ClampTo(b *Buffer) {
	if c.Row >= b.GetRowCount() {
		c.Row = b.GetRowCount() - 1
	}
	if c.Row < 0 {
		c.Row = 0
	}
	if length := b.GetRowLength(c.Row); c.Col > length {
		c.Col = length
	}
	if c.Col < 0 {
		c.Col = 0
	}
}
