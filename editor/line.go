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

// A line of text in the editor. Tabs are kept as single bytes.
type Line struct {
	Text []byte
}

func NewLine(text string) *Line {
	return &Line{Text: []byte(text)}
}

func (l *Line) String() string {
	return string(l.Text)
}

func (l *Line) Length() int {
	return len(l.Text)
}

// DisplayText returns the line with tabs expanded.
func (l *Line) DisplayText() []byte {
	return ExpandTabs(l.Text)
}

// insert c at col; col must be in [0, Length()]
func (l *Line) InsertChar(col int, c byte) {
	l.Text = append(l.Text, 0)
	copy(l.Text[col+1:], l.Text[col:])
	l.Text[col] = c
}

// delete character at col and return the deleted character
func (l *Line) DeleteChar(col int) byte {
	c := l.Text[col]
	l.Text = append(l.Text[:col], l.Text[col+1:]...)
	return c
}

// splits line at col, return a new line containing the remaining text.
func (l *Line) Split(col int) *Line {
	after := make([]byte, len(l.Text)-col)
	copy(after, l.Text[col:])
	l.Text = l.Text[:col:col]
	return &Line{Text: after}
}

// joins lines by appending the passed-in line to the current line
func (l *Line) Join(other *Line) {
	l.Text = append(l.Text, other.Text...)
}
