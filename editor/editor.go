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
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	gote "github.com/timburks/gote/types"
)

// ErrNoFileName is returned when saving a buffer that has no path.
var ErrNoFileName = errors.New("no file name")

// The Editor manages the editing of text in a Buffer.
type Editor struct {
	Buffer *Buffer   // the document
	Cursor *Cursor   // edit position
	Window *Window   // visible region
	size   gote.Size // size of editing area
}

func NewEditor() *Editor {
	return &Editor{
		Buffer: NewBuffer(),
		Cursor: &Cursor{},
		Window: NewWindow(),
	}
}

// ReadFile loads path into the buffer. A path that does not exist yet
// gives an empty buffer bound to that path; any other error is returned.
func (e *Editor) ReadFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		e.Buffer = NewBuffer()
		e.Buffer.SetFileName(path)
		e.Cursor = &Cursor{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("read %s: is a directory", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	e.Buffer = NewBuffer()
	e.Buffer.LoadBytes(b)
	e.Buffer.SetFileName(path)
	e.Cursor = &Cursor{}
	return nil
}

func (e *Editor) Bytes() []byte {
	return e.Buffer.Bytes()
}

// WriteFile saves the buffer to path, or to the buffer's own file when
// path is empty. The contents go to a temporary file that is renamed over
// the target, and the buffer is marked clean only once that succeeds.
// A symlink is followed so that the link survives, and a directory that
// does not allow new files falls back to rewriting the target in place.
func (e *Editor) WriteFile(path string) error {
	if path == "" {
		path = e.Buffer.GetFileName()
	}
	if path == "" {
		return ErrNoFileName
	}
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	perm := fs.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	b := e.Bytes()
	err := writeAtomic(target, b, perm)
	if errors.Is(err, errNoTempFile) {
		log.Printf("%v; rewriting %s in place", err, target)
		err = writeInPlace(target, b, perm)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	e.Buffer.SetFileName(path)
	e.Buffer.MarkClean()
	log.Printf("wrote %d bytes to %s", len(b), target)
	return nil
}

var errNoTempFile = errors.New("cannot create temporary file")

func writeAtomic(path string, b []byte, perm fs.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", errNoTempFile, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if _, err = f.Write(b); err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp, perm)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	return err
}

// writeInPlace truncates and rewrites an existing file.
func writeInPlace(path string, b []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err = f.Write(b); err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// SetSize sets the size of the text area.
func (e *Editor) SetSize(size gote.Size) {
	e.size = size
}

// Scroll recomputes the window so that the cursor is visible.
func (e *Editor) Scroll() {
	e.Cursor.ClampTo(e.Buffer)
	e.Window.Recompute(e.Cursor, e.Buffer, e.size)
}

func (e *Editor) GetCursor() gote.Point {
	return e.Cursor.Point()
}

func (e *Editor) SetCursor(p gote.Point) {
	e.Cursor.SetPosition(e.Buffer, p)
}

// These editor primitives apply one command at the cursor and leave the
// cursor valid for the buffer.

func (e *Editor) InsertChar(c byte) error {
	p := e.Cursor.Point()
	if err := e.Buffer.InsertChar(p.Row, p.Col, c); err != nil {
		return err
	}
	e.SetCursor(gote.Point{Row: p.Row, Col: p.Col + 1})
	return nil
}

func (e *Editor) InsertTab() error {
	p := e.Cursor.Point()
	if err := e.Buffer.InsertTab(p.Row, p.Col); err != nil {
		return err
	}
	e.SetCursor(gote.Point{Row: p.Row, Col: p.Col + 1})
	return nil
}

func (e *Editor) InsertNewline() error {
	p := e.Cursor.Point()
	if err := e.Buffer.InsertNewline(p.Row, p.Col); err != nil {
		return err
	}
	e.SetCursor(gote.Point{Row: p.Row + 1, Col: 0})
	return nil
}

// InsertText inserts text at the cursor, splitting rows at newlines.
func (e *Editor) InsertText(text string) error {
	for i := 0; i < len(text); i++ {
		var err error
		switch c := text[i]; c {
		case '\n':
			err = e.InsertNewline()
		default:
			err = e.InsertChar(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BackspaceChar deletes the character before the cursor.
func (e *Editor) BackspaceChar() error {
	p := e.Cursor.Point()
	next, err := e.Buffer.DeleteCharBefore(p.Row, p.Col)
	if err != nil {
		return err
	}
	e.SetCursor(next)
	return nil
}

// DeleteChar deletes the character under the cursor.
func (e *Editor) DeleteChar() error {
	p := e.Cursor.Point()
	if err := e.Buffer.DeleteCharAfter(p.Row, p.Col); err != nil {
		return err
	}
	e.Cursor.ClampTo(e.Buffer)
	return nil
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	for i := 0; i < multiplier; i++ {
		e.Cursor.Move(e.Buffer, direction)
	}
}

func (e *Editor) MoveToBeginningOfLine() {
	e.Cursor.MoveToBeginningOfLine(e.Buffer)
}

func (e *Editor) MoveToEndOfLine() {
	e.Cursor.MoveToEndOfLine(e.Buffer)
}

func (e *Editor) PageUp() {
	// move to the top of the screen
	e.Cursor.Row = e.Window.offset.Rows
	e.Cursor.ClampTo(e.Buffer)
	// move up by a page
	e.MoveCursor(gote.MoveUp, e.size.Rows)
}

func (e *Editor) PageDown() {
	// move to the bottom of the screen
	e.Cursor.Row = min(
		e.Window.offset.Rows+e.size.Rows-1,
		e.Buffer.GetRowCount()-1)
	e.Cursor.ClampTo(e.Buffer)
	// move down by a page
	e.MoveCursor(gote.MoveDown, e.size.Rows)
}
