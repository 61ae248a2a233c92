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
	"errors"
	"fmt"
	"os"

	"github.com/nsf/termbox-go"

	gote "github.com/timburks/gote/types"
)

// Driver names accepted by Open.
const (
	DriverTermbox = "termbox"
	DriverANSI    = "ansi"
)

// Open puts the terminal into raw mode with the named driver.
// Close restores it.
func Open(driver string) (gote.Terminal, error) {
	switch driver {
	case "", DriverTermbox:
		s, err := NewScreen()
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverANSI:
		a, err := NewANSI(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown terminal driver %q", driver)
	}
}

// The Screen is a termbox terminal.
type Screen struct {
	input []byte
}

func NewScreen() (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	return &Screen{input: make([]byte, 64)}, nil
}

func (s *Screen) Close() error {
	termbox.Close()
	return nil
}

func (s *Screen) Size() gote.Size {
	var size gote.Size
	size.Cols, size.Rows = termbox.Size()
	return size
}

func (s *Screen) Clear() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (s *Screen) SetCell(col int, row int, c rune, style gote.Style) {
	switch style {
	case gote.StyleReversed:
		termbox.SetCell(col, row, c, termbox.ColorDefault|termbox.AttrReverse, termbox.ColorDefault)
	default:
		termbox.SetCell(col, row, c, termbox.ColorDefault, termbox.ColorDefault)
	}
}

func (s *Screen) SetCursor(p gote.Point) {
	termbox.SetCursor(p.Col, p.Row)
}

func (s *Screen) Flush() error {
	return termbox.Flush()
}

// ReadInput returns the bytes of the next raw event. Keys are not parsed
// here; a resize returns an empty chunk.
func (s *Screen) ReadInput() ([]byte, error) {
	for {
		event := termbox.PollRawEvent(s.input)
		switch event.Type {
		case termbox.EventRaw:
			chunk := make([]byte, event.N)
			copy(chunk, s.input[:event.N])
			return chunk, nil
		case termbox.EventResize:
			termbox.Flush()
			return nil, nil
		case termbox.EventError:
			return nil, event.Err
		case termbox.EventInterrupt:
			return nil, errors.New("input interrupted")
		}
	}
}
