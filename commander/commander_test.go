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
package commander

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/gote/editor"
	gote "github.com/timburks/gote/types"
)

// scripted is a Terminal that replays fixed input chunks and keeps the
// last frame it was asked to draw.
type scripted struct {
	size    gote.Size
	cells   map[gote.Point]rune
	styles  map[gote.Point]gote.Style
	cursor  gote.Point
	input   [][]byte
	flushes int
	closed  bool
}

func newScripted(rows, cols int, input ...string) *scripted {
	t := &scripted{size: gote.Size{Rows: rows, Cols: cols}}
	for _, chunk := range input {
		t.input = append(t.input, []byte(chunk))
	}
	t.Clear()
	return t
}

func (t *scripted) Size() gote.Size { return t.size }

func (t *scripted) Clear() {
	t.cells = make(map[gote.Point]rune)
	t.styles = make(map[gote.Point]gote.Style)
}

func (t *scripted) SetCell(col int, row int, c rune, style gote.Style) {
	p := gote.Point{Row: row, Col: col}
	t.cells[p] = c
	t.styles[p] = style
}

func (t *scripted) SetCursor(p gote.Point) { t.cursor = p }

func (t *scripted) Flush() error {
	t.flushes++
	return nil
}

func (t *scripted) ReadInput() ([]byte, error) {
	if len(t.input) == 0 {
		return nil, io.EOF
	}
	chunk := t.input[0]
	t.input = t.input[1:]
	return chunk, nil
}

func (t *scripted) Close() error {
	t.closed = true
	return nil
}

func (t *scripted) row(r int) string {
	var s strings.Builder
	for col := 0; col < t.size.Cols; col++ {
		if c, ok := t.cells[gote.Point{Row: r, Col: col}]; ok {
			s.WriteRune(c)
		} else {
			s.WriteByte(' ')
		}
	}
	return strings.TrimRight(s.String(), " ")
}

func newTestCommander(t *testing.T, text string) *Commander {
	t.Helper()
	e := editor.NewEditor()
	e.Buffer.LoadBytes([]byte(text))
	return NewCommander(e)
}

func TestTypeAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	e := editor.NewEditor()
	require.NoError(t, e.ReadFile(path))
	c := NewCommander(e)

	term := newScripted(10, 40, "Hello", "\r", "World", "\x13", "\x11")
	require.NoError(t, c.Run(term))
	assert.False(t, c.IsRunning())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", string(data))
	assert.False(t, e.Buffer.Dirty())
	assert.Equal(t, 5, term.flushes)
}

func TestBackspaceAcrossLines(t *testing.T) {
	c := newTestCommander(t, "abc\ndef")
	c.editor.SetCursor(gote.Point{Row: 0, Col: 3})
	c.ProcessInput([]byte{0x7f, 0x7f, 0x7f})
	assert.Equal(t, "\ndef", string(c.editor.Bytes()))
	assert.Equal(t, gote.Point{Row: 0, Col: 0}, c.editor.GetCursor())

	// nothing before the start of the document
	c.ProcessInput([]byte{0x7f})
	assert.Equal(t, "\ndef", string(c.editor.Bytes()))
	assert.True(t, c.IsRunning())
}

func TestUpArrowOnFirstRow(t *testing.T) {
	c := newTestCommander(t, "abc\ndef")
	c.editor.SetCursor(gote.Point{Row: 0, Col: 2})
	c.ProcessInput([]byte("\x1b[A"))
	assert.Equal(t, gote.Point{Row: 0, Col: 2}, c.editor.GetCursor())
	assert.Equal(t, "abc\ndef", string(c.editor.Bytes()))
}

func TestArrowKeysSplitAcrossReads(t *testing.T) {
	c := newTestCommander(t, "abc\ndef")
	c.ProcessInput([]byte("\x1b"))
	c.ProcessInput([]byte("[B"))
	// the lone ESC is dropped and "[B" is typed
	assert.Equal(t, "[Babc\ndef", string(c.editor.Bytes()))

	c = newTestCommander(t, "abc\ndef")
	c.ProcessInput([]byte("\x1b["))
	c.ProcessInput([]byte("B"))
	assert.Equal(t, gote.Point{Row: 1, Col: 0}, c.editor.GetCursor())
}

func TestEditKeys(t *testing.T) {
	c := newTestCommander(t, "hello\nworld")
	c.ProcessInput([]byte("\x04"))
	assert.Equal(t, gote.Point{Row: 0, Col: 5}, c.editor.GetCursor())
	c.ProcessInput([]byte("\x1b[3~"))
	assert.Equal(t, "helloworld", string(c.editor.Bytes()))
	c.ProcessInput([]byte("\x01\t"))
	assert.Equal(t, "\thelloworld", string(c.editor.Bytes()))
	assert.Equal(t, gote.Point{Row: 0, Col: 1}, c.editor.GetCursor())
	// a lone ESC does nothing while editing
	c.ProcessInput([]byte("\x1b"))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, "\thelloworld", string(c.editor.Bytes()))
}

func TestSaveWithoutNamePrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.txt")
	c := newTestCommander(t, "")
	c.ProcessInput([]byte("ab\x13"))
	require.Equal(t, gote.ModePrompt, c.GetMode())
	assert.True(t, strings.HasPrefix(c.GetMessage(), "Save as: "))

	c.ProcessInput([]byte(path + "x"))
	c.ProcessInput([]byte{0x7f})
	assert.Equal(t, path, c.GetPrompt())
	c.ProcessInput([]byte("\r"))

	assert.Equal(t, gote.ModeEdit, c.GetMode())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
	assert.Equal(t, path, c.editor.Buffer.GetFileName())
	assert.Contains(t, c.GetMessage(), "1 lines written")
	// typing resumes in the buffer
	c.ProcessInput([]byte("c"))
	assert.Equal(t, "abc", string(c.editor.Bytes()))
}

func TestEscapeCancelsSave(t *testing.T) {
	c := newTestCommander(t, "")
	c.ProcessInput([]byte("ab\x13"))
	c.ProcessInput([]byte("name"))
	c.ProcessInput([]byte("\x1b"))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, "", c.GetPrompt())
	assert.Equal(t, "Save aborted", c.GetMessage())
	assert.True(t, c.editor.Buffer.Dirty())
	assert.Equal(t, "ab", string(c.editor.Bytes()))
}

func TestEmptyPromptIgnoresEnter(t *testing.T) {
	c := newTestCommander(t, "")
	c.ProcessInput([]byte("\x13\r"))
	assert.Equal(t, gote.ModePrompt, c.GetMode())
}

func TestFailedSaveReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.txt")
	c := newTestCommander(t, "")
	c.editor.Buffer.SetFileName(path)
	c.ProcessInput([]byte("a\x13"))
	assert.True(t, strings.HasPrefix(c.GetMessage(), "Save failed: "))
	assert.True(t, c.editor.Buffer.Dirty())
	assert.True(t, c.IsRunning())
}

func TestQuitStopsProcessing(t *testing.T) {
	c := newTestCommander(t, "")
	c.ProcessInput([]byte("a\x11b"))
	assert.False(t, c.IsRunning())
	assert.Equal(t, "a", string(c.editor.Bytes()))
}

func TestMessageExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestCommander(t, "")
	c.now = func() time.Time { return now }
	assert.Equal(t, DefaultHint, c.GetMessage())

	c.SetMessage("saved %d", 3)
	assert.Equal(t, "saved 3", c.GetMessage())
	now = now.Add(4 * time.Second)
	assert.Equal(t, "saved 3", c.GetMessage())
	now = now.Add(2 * time.Second)
	assert.Equal(t, DefaultHint, c.GetMessage())
}

func TestOptions(t *testing.T) {
	c := NewCommander(editor.NewEditor(), WithHint("press keys"), WithMessageTimeout(time.Minute))
	assert.Equal(t, "press keys", c.GetMessage())
	assert.Equal(t, time.Minute, c.timeout)

	c = NewCommander(editor.NewEditor(), WithHint(""))
	assert.Equal(t, DefaultHint, c.GetMessage())
}

func TestRender(t *testing.T) {
	c := newTestCommander(t, "one\n\ttwo")
	c.editor.SetCursor(gote.Point{Row: 1, Col: 1})
	term := newScripted(5, 30)
	require.NoError(t, c.Render(term))

	assert.Equal(t, "one", term.row(0))
	assert.Equal(t, "        two", term.row(1))
	assert.Equal(t, "~", term.row(2))
	assert.Contains(t, term.row(3), "[No Name] [2 lines]")
	assert.Equal(t, gote.StyleReversed, term.styles[gote.Point{Row: 3, Col: 0}])
	assert.Equal(t, strings.TrimRight(DefaultHint[:30], " "), term.row(4))
	assert.Equal(t, gote.Point{Row: 1, Col: 8}, term.cursor)
	assert.Equal(t, 1, term.flushes)
}

func TestRenderPromptCursor(t *testing.T) {
	c := newTestCommander(t, "")
	c.ProcessInput([]byte("\x13abc"))
	term := newScripted(5, 40)
	require.NoError(t, c.Render(term))
	assert.True(t, strings.HasPrefix(term.row(4), "Save as: abc"))
	assert.Equal(t, gote.Point{Row: 4, Col: 12}, term.cursor)
}

func TestRenderScrollsToCursor(t *testing.T) {
	text := strings.Repeat("x\n", 30) + "last"
	c := newTestCommander(t, text)
	c.editor.SetCursor(gote.Point{Row: 30, Col: 4})
	term := newScripted(12, 20)
	require.NoError(t, c.Render(term))
	assert.Equal(t, "last", term.row(9))
	assert.Equal(t, gote.Point{Row: 9, Col: 4}, term.cursor)
}

func TestRunReturnsReadErrors(t *testing.T) {
	c := newTestCommander(t, "")
	term := newScripted(5, 20, "abc")
	err := c.Run(term)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, "abc", string(c.editor.Bytes()))
}

func TestRunRedrawsAfterResize(t *testing.T) {
	c := newTestCommander(t, "")
	term := newScripted(5, 20, "a", "", "\x11")
	require.NoError(t, c.Run(term))
	assert.Equal(t, 3, term.flushes)
	assert.Equal(t, "a", string(c.editor.Bytes()))
}
