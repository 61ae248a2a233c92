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
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	gote "github.com/timburks/gote/types"
)

var (
	// ErrOutOfBounds reports a position outside the buffer. It indicates a
	// caller that skipped clamping and is never expected during editing.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrStartOfDocument is returned by a backspace at (0, 0).
	ErrStartOfDocument = errors.New("at start of document")
	// ErrEndOfDocument is returned by a forward delete at the end of the last line.
	ErrEndOfDocument = errors.New("at end of document")
)

// A Buffer represents a file being edited. It always holds at least one line.
type Buffer struct {
	lines    []*Line
	fileName string
	dirty    bool
}

func NewBuffer() *Buffer {
	return &Buffer{lines: []*Line{NewLine("")}}
}

func (b *Buffer) GetFileName() string {
	return b.fileName
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
}

// GetName returns a short name for display.
func (b *Buffer) GetName() string {
	if b.fileName == "" {
		return "[No Name]"
	}
	return filepath.Base(b.fileName)
}

// Dirty reports whether the buffer has changed since it was loaded or saved.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkClean clears the dirty flag after a confirmed write.
func (b *Buffer) MarkClean() {
	b.dirty = false
}

// LoadBytes replaces the contents with bytes split on newlines.
func (b *Buffer) LoadBytes(content []byte) {
	parts := bytes.Split(content, []byte("\n"))
	b.lines = make([]*Line, len(parts))
	for i, part := range parts {
		text := make([]byte, len(part))
		copy(text, part)
		b.lines[i] = &Line{Text: text}
	}
	b.dirty = false
}

// Bytes joins the lines with newlines. It is the inverse of LoadBytes.
func (b *Buffer) Bytes() []byte {
	var out bytes.Buffer
	for i, line := range b.lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.Write(line.Text)
	}
	return out.Bytes()
}

func (b *Buffer) GetRowCount() int {
	return len(b.lines)
}

func (b *Buffer) GetRowLength(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return b.lines[row].Length()
}

// GetLine returns the line at row, or nil if there is none.
func (b *Buffer) GetLine(row int) *Line {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

// TextAt returns the text of a row.
func (b *Buffer) TextAt(row int) string {
	if line := b.GetLine(row); line != nil {
		return line.String()
	}
	return ""
}

func (b *Buffer) check(row, col int) error {
	if row < 0 || row >= len(b.lines) || col < 0 || col > b.lines[row].Length() {
		return fmt.Errorf("row %d col %d: %w", row, col, ErrOutOfBounds)
	}
	return nil
}

func (b *Buffer) InsertChar(row, col int, c byte) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	b.lines[row].InsertChar(col, c)
	b.dirty = true
	return nil
}

// InsertTab inserts a single tab byte.
func (b *Buffer) InsertTab(row, col int) error {
	return b.InsertChar(row, col, '\t')
}

// InsertNewline splits a row at col. Moving the cursor to the start of
// the new row is up to the caller.
func (b *Buffer) InsertNewline(row, col int) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	newLine := b.lines[row].Split(col)
	b.lines = append(b.lines, nil)
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row+1] = newLine
	b.dirty = true
	return nil
}

// DeleteCharBefore removes the character before (row, col), joining the
// row to the previous one at column zero. It returns the resulting cursor
// position.
func (b *Buffer) DeleteCharBefore(row, col int) (gote.Point, error) {
	here := gote.Point{Row: row, Col: col}
	if err := b.check(row, col); err != nil {
		return here, err
	}
	if col > 0 {
		b.lines[row].DeleteChar(col - 1)
		b.dirty = true
		return gote.Point{Row: row, Col: col - 1}, nil
	}
	if row == 0 {
		return here, ErrStartOfDocument
	}
	previous := b.lines[row-1]
	joinAt := previous.Length()
	previous.Join(b.lines[row])
	b.deleteRow(row)
	b.dirty = true
	return gote.Point{Row: row - 1, Col: joinAt}, nil
}

// DeleteCharAfter removes the character at (row, col), joining the next
// row when col is at the end of the line.
func (b *Buffer) DeleteCharAfter(row, col int) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	line := b.lines[row]
	if col < line.Length() {
		line.DeleteChar(col)
		b.dirty = true
		return nil
	}
	if row == len(b.lines)-1 {
		return ErrEndOfDocument
	}
	line.Join(b.lines[row+1])
	b.deleteRow(row + 1)
	b.dirty = true
	return nil
}

func (b *Buffer) deleteRow(row int) {
	copy(b.lines[row:], b.lines[row+1:])
	b.lines[len(b.lines)-1] = nil
	b.lines = b.lines[:len(b.lines)-1]
}
