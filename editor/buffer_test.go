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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gote "github.com/timburks/gote/types"
)

const gettysburg = "THE GETTYSBURG ADDRESS:\n\nFour score and seven years ago our fathers brought forth on this\n\tcontinent a new nation,\n"

func load(text string) *Buffer {
	b := NewBuffer()
	b.LoadBytes([]byte(text))
	return b
}

func randomText(r *rand.Rand, n int) []byte {
	const alphabet = "abcdefghijklmnopqrstuvwxyz ABC.,;\t\n"
	text := make([]byte, n)
	for i := range text {
		text[i] = alphabet[r.Intn(len(alphabet))]
	}
	return text
}

func TestNewBufferHasOneEmptyLine(t *testing.T) {
	b := NewBuffer()
	assert.Equal(t, 1, b.GetRowCount())
	assert.Equal(t, 0, b.GetRowLength(0))
	assert.False(t, b.Dirty())
	assert.Equal(t, "[No Name]", b.GetName())
}

// read and write text without changing it
func TestReadWriteInvariance(t *testing.T) {
	for _, text := range []string{
		"",
		"\n",
		"\n\n",
		"abc",
		"abc\n",
		"abc\ndef",
		"a\r\nb\r\n",
		gettysburg,
	} {
		b := load(text)
		assert.Equal(t, text, string(b.Bytes()), "round trip of %q", text)
		assert.GreaterOrEqual(t, b.GetRowCount(), 1)
		assert.False(t, b.Dirty())
	}
}

func TestReadWriteInvarianceRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		text := randomText(r, r.Intn(80))
		assert.Equal(t, string(text), string(load(string(text)).Bytes()))
	}
}

func TestLoadSplitsOnNewlines(t *testing.T) {
	b := load("abc\ndef\n")
	require.Equal(t, 3, b.GetRowCount())
	assert.Equal(t, "abc", b.TextAt(0))
	assert.Equal(t, "def", b.TextAt(1))
	assert.Equal(t, "", b.TextAt(2))
}

func TestInsertChar(t *testing.T) {
	b := load("ac")
	require.NoError(t, b.InsertChar(0, 1, 'b'))
	assert.Equal(t, "abc", b.TextAt(0))
	require.NoError(t, b.InsertChar(0, 3, 'd'))
	assert.Equal(t, "abcd", b.TextAt(0))
	require.NoError(t, b.InsertChar(0, 0, '_'))
	assert.Equal(t, "_abcd", b.TextAt(0))
	assert.True(t, b.Dirty())
}

func TestInsertCharOutOfBounds(t *testing.T) {
	b := load("abc\nde")
	for _, p := range []gote.Point{
		{Row: -1, Col: 0},
		{Row: 2, Col: 0},
		{Row: 0, Col: 4},
		{Row: 1, Col: -1},
	} {
		err := b.InsertChar(p.Row, p.Col, 'x')
		assert.ErrorIs(t, err, ErrOutOfBounds, "%+v", p)
	}
	assert.Equal(t, "abc\nde", string(b.Bytes()))
	assert.False(t, b.Dirty())
}

func TestInsertThenBackspaceRestoresLine(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		text := randomText(r, 1+r.Intn(60))
		b := load(string(text))
		before := string(b.Bytes())
		row := r.Intn(b.GetRowCount())
		col := r.Intn(b.GetRowLength(row) + 1)
		c := byte(0x20 + r.Intn(0x5f))

		require.NoError(t, b.InsertChar(row, col, c))
		p, err := b.DeleteCharBefore(row, col+1)
		require.NoError(t, err)
		assert.Equal(t, gote.Point{Row: row, Col: col}, p)
		assert.Equal(t, before, string(b.Bytes()))
	}
}

func TestInsertNewline(t *testing.T) {
	b := load("hello world\nnext")
	require.NoError(t, b.InsertNewline(0, 5))
	require.Equal(t, 3, b.GetRowCount())
	assert.Equal(t, "hello", b.TextAt(0))
	assert.Equal(t, " world", b.TextAt(1))
	assert.Equal(t, "next", b.TextAt(2))

	require.NoError(t, b.InsertNewline(2, 4))
	assert.Equal(t, "hello\n world\nnext\n", string(b.Bytes()))

	require.NoError(t, b.InsertNewline(0, 0))
	assert.Equal(t, "\nhello\n world\nnext\n", string(b.Bytes()))
}

func TestSplitLineDoesNotAlias(t *testing.T) {
	b := load("abcdef")
	require.NoError(t, b.InsertNewline(0, 3))
	require.NoError(t, b.InsertChar(0, 3, 'X'))
	assert.Equal(t, "abcX", b.TextAt(0))
	assert.Equal(t, "def", b.TextAt(1))
}

func TestDeleteCharBefore(t *testing.T) {
	b := load("abc\ndef")
	p, err := b.DeleteCharBefore(1, 2)
	require.NoError(t, err)
	assert.Equal(t, gote.Point{Row: 1, Col: 1}, p)
	assert.Equal(t, "abc\ndf", string(b.Bytes()))

	// at column zero the row joins the previous one
	p, err = b.DeleteCharBefore(1, 0)
	require.NoError(t, err)
	assert.Equal(t, gote.Point{Row: 0, Col: 3}, p)
	assert.Equal(t, "abcdf", string(b.Bytes()))
	assert.Equal(t, 1, b.GetRowCount())
}

func TestBackspaceAtStartOfDocumentIsNoOp(t *testing.T) {
	b := load("abc\ndef")
	p, err := b.DeleteCharBefore(0, 0)
	assert.ErrorIs(t, err, ErrStartOfDocument)
	assert.Equal(t, gote.Point{Row: 0, Col: 0}, p)
	assert.Equal(t, "abc\ndef", string(b.Bytes()))
	assert.False(t, b.Dirty())
}

func TestDeleteCharAfter(t *testing.T) {
	b := load("abc\ndef")
	require.NoError(t, b.DeleteCharAfter(0, 1))
	assert.Equal(t, "ac\ndef", string(b.Bytes()))

	// at the end of a line the next row joins this one
	require.NoError(t, b.DeleteCharAfter(0, 2))
	assert.Equal(t, "acdef", string(b.Bytes()))
	assert.Equal(t, 1, b.GetRowCount())
}

func TestDeleteAtEndOfDocumentIsNoOp(t *testing.T) {
	b := load("abc\ndef")
	err := b.DeleteCharAfter(1, 3)
	assert.ErrorIs(t, err, ErrEndOfDocument)
	assert.Equal(t, "abc\ndef", string(b.Bytes()))
	assert.False(t, b.Dirty())
}

func TestDeletingEverythingLeavesOneLine(t *testing.T) {
	b := load("a\nb\n")
	p := gote.Point{Row: 2, Col: 0}
	for {
		next, err := b.DeleteCharBefore(p.Row, p.Col)
		if err != nil {
			assert.ErrorIs(t, err, ErrStartOfDocument)
			break
		}
		p = next
	}
	assert.Equal(t, 1, b.GetRowCount())
	assert.Equal(t, "", string(b.Bytes()))
}

func TestInsertTabStoresOneByte(t *testing.T) {
	b := load("ab")
	require.NoError(t, b.InsertTab(0, 1))
	assert.Equal(t, "a\tb", b.TextAt(0))
	assert.Equal(t, 3, b.GetRowLength(0))
	assert.Equal(t, 9, DisplayColumn(b.GetLine(0).Text, 3))
}

func TestMarkClean(t *testing.T) {
	b := load("abc")
	require.NoError(t, b.InsertChar(0, 0, 'x'))
	assert.True(t, b.Dirty())
	b.MarkClean()
	assert.False(t, b.Dirty())
}
