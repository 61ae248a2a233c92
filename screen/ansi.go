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
package screen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	gote "github.com/timburks/gote/types"
)

const (
	clearScreen  = "\x1b[2J"
	cursorHome   = "\x1b[H"
	clearLine    = "\x1b[K"
	clearBelow   = "\x1b[J"
	hideCursor   = "\x1b[?25l"
	showCursor   = "\x1b[?25h"
	reverseVideo = "\x1b[7m"
	resetStyle   = "\x1b[m"
)

type cell struct {
	c     rune
	style gote.Style
}

// ANSI is a terminal driven with plain escape sequences. Every Flush
// repaints the whole screen.
type ANSI struct {
	in      io.Reader
	out     io.Writer
	fd      int
	state   *term.State
	getSize func() (int, int, error)
	cells   [][]cell
	cursor  gote.Point
	input   []byte
}

// NewANSI puts in into raw mode and draws on out.
func NewANSI(in *os.File, out *os.File) (*ANSI, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("not running in a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enabling terminal raw mode: %w", err)
	}
	a := newANSI(in, out, func() (int, int, error) {
		return term.GetSize(int(out.Fd()))
	})
	a.fd = fd
	a.state = state
	return a, nil
}

func newANSI(in io.Reader, out io.Writer, getSize func() (int, int, error)) *ANSI {
	return &ANSI{
		in:      in,
		out:     out,
		fd:      -1,
		getSize: getSize,
		input:   make([]byte, 64),
	}
}

// Close clears the screen and restores the terminal state.
func (a *ANSI) Close() error {
	io.WriteString(a.out, clearScreen+cursorHome+showCursor)
	if a.state != nil {
		err := term.Restore(a.fd, a.state)
		a.state = nil
		return err
	}
	return nil
}

func (a *ANSI) Size() gote.Size {
	cols, rows, err := a.getSize()
	if err != nil || cols <= 0 || rows <= 0 {
		return gote.Size{Rows: 24, Cols: 80}
	}
	return gote.Size{Rows: rows, Cols: cols}
}

// Clear empties the cell grid, sizing it to the terminal.
func (a *ANSI) Clear() {
	size := a.Size()
	a.cells = make([][]cell, size.Rows)
	for i := range a.cells {
		a.cells[i] = make([]cell, size.Cols)
	}
}

func (a *ANSI) SetCell(col int, row int, c rune, style gote.Style) {
	if row < 0 || row >= len(a.cells) || col < 0 || col >= len(a.cells[row]) {
		return
	}
	a.cells[row][col] = cell{c: c, style: style}
}

func (a *ANSI) SetCursor(p gote.Point) {
	a.cursor = p
}

// Flush writes the cell grid to the terminal in one write.
func (a *ANSI) Flush() error {
	var out bytes.Buffer
	out.WriteString(hideCursor + cursorHome)
	for i, row := range a.cells {
		if i > 0 {
			out.WriteString("\r\n")
		}
		a.writeRow(&out, row)
		out.WriteString(clearLine)
	}
	out.WriteString(clearBelow)
	fmt.Fprintf(&out, "\x1b[%d;%dH", a.cursor.Row+1, a.cursor.Col+1)
	out.WriteString(showCursor)
	_, err := a.out.Write(out.Bytes())
	return err
}

func (a *ANSI) writeRow(out *bytes.Buffer, row []cell) {
	// trailing empty cells are covered by clearLine
	end := len(row)
	for end > 0 && row[end-1].c == 0 {
		end--
	}
	style := gote.StyleNormal
	for _, x := range row[:end] {
		if x.style != style {
			if x.style == gote.StyleReversed {
				out.WriteString(reverseVideo)
			} else {
				out.WriteString(resetStyle)
			}
			style = x.style
		}
		switch {
		case x.c == 0:
			out.WriteByte(' ')
		case x.c < 0x20 || (x.c >= 0x7f && x.c < 0xa0):
			// never pass C0 or C1 controls through to the terminal
			out.WriteByte('?')
		default:
			out.WriteRune(x.c)
		}
	}
	if style != gote.StyleNormal {
		out.WriteString(resetStyle)
	}
}

// ReadInput blocks for the next read from the terminal.
func (a *ANSI) ReadInput() ([]byte, error) {
	for {
		n, err := a.in.Read(a.input)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, a.input[:n])
			return chunk, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
