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
	"github.com/mattn/go-runewidth"

	gote "github.com/timburks/gote/types"
)

// Render redraws the whole screen: the text area, the info bar, and the
// message bar in the last two rows, then places the hardware cursor.
func (c *Commander) Render(d gote.Display) error {
	e := c.editor
	d.Clear()
	screenSize := d.Size()

	// reserve the last two rows for the info bar and the message bar
	editSize := screenSize
	editSize.Rows -= 2
	if editSize.Rows < 1 {
		editSize.Rows = 1
	}
	e.SetSize(editSize)
	e.Scroll()

	e.Window.Render(d, e.Buffer)
	e.Window.RenderInfoBar(d, editSize.Rows, e.Buffer, e.Cursor)
	c.RenderMessageBar(d, editSize.Rows+1, screenSize.Cols)

	if c.mode == gote.ModePrompt {
		prefix := runewidth.StringWidth("Save as: " + c.prompt)
		d.SetCursor(gote.Point{Row: editSize.Rows + 1, Col: min(prefix, screenSize.Cols-1)})
	} else {
		d.SetCursor(e.Window.ToScreen(e.Cursor, e.Buffer))
	}
	return d.Flush()
}

func (c *Commander) RenderMessageBar(d gote.Display, row int, width int) {
	line := runewidth.Truncate(c.GetMessage(), width, "")
	x := 0
	for _, ch := range line {
		d.SetCell(x, row, ch, gote.StyleNormal)
		x += runewidth.RuneWidth(ch)
	}
}
