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

// All conversions between stored columns and screen columns go through
// this file. A tab occupies one byte in a Line but advances the display
// to the next multiple of gote.TabWidth; every other byte is one cell wide.

// advance returns the display column reached after drawing c at display column x.
func advance(x int, c byte) int {
	if c == '\t' {
		return x + gote.TabWidth - x%gote.TabWidth
	}
	return x + 1
}

// DisplayColumn returns the screen column of stored column col in text.
func DisplayColumn(text []byte, col int) int {
	if col > len(text) {
		col = len(text)
	}
	x := 0
	for i := 0; i < col; i++ {
		x = advance(x, text[i])
	}
	return x
}

// ColumnForDisplay returns the largest stored column whose display column
// does not exceed x. Targets past the end of text map to len(text).
func ColumnForDisplay(text []byte, x int) int {
	d := 0
	for i, c := range text {
		next := advance(d, c)
		if next > x {
			return i
		}
		d = next
	}
	return len(text)
}

// ExpandTabs returns the text as it appears on screen.
// Control bytes and bytes outside ASCII are shown as '?' so that each
// still takes one cell and none reaches the terminal as a control.
func ExpandTabs(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for _, c := range text {
		switch {
		case c == '\t':
			out = append(out, ' ')
			for len(out)%gote.TabWidth != 0 {
				out = append(out, ' ')
			}
		case c < 0x20 || c >= 0x7f:
			out = append(out, '?')
		default:
			out = append(out, c)
		}
	}
	return out
}
