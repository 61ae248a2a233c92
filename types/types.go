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
package types

// Tabs are stored as one byte and displayed up to the next multiple of TabWidth.
const TabWidth = 8

// Editor modes
const (
	ModeEdit   = 0
	ModePrompt = 1
	ModeQuit   = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// A Style selects how a cell is drawn.
type Style int

const (
	StyleNormal   Style = 0
	StyleReversed Style = 1
)

// A Display is a grid of character cells with a hardware cursor.
type Display interface {
	Size() Size
	Clear()
	SetCell(col int, row int, c rune, style Style)
	SetCursor(p Point)
	Flush() error
}

// A Terminal is a Display that also delivers raw input.
// ReadInput blocks until at least one byte is available; an empty
// chunk with a nil error means the terminal was resized.
type Terminal interface {
	Display
	ReadInput() ([]byte, error)
	Close() error
}
