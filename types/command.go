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

// CommandKind identifies a logical editing command produced from key input.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandInsertChar
	CommandInsertNewline
	CommandInsertTab
	CommandDeleteBefore
	CommandDeleteAfter
	CommandMoveUp
	CommandMoveDown
	CommandMoveLeft
	CommandMoveRight
	CommandLineStart
	CommandLineEnd
	CommandPageUp
	CommandPageDown
	CommandSave
	CommandQuit
	CommandEscape
)

var commandNames = map[CommandKind]string{
	CommandNone:          "None",
	CommandInsertChar:    "InsertChar",
	CommandInsertNewline: "InsertNewline",
	CommandInsertTab:     "InsertTab",
	CommandDeleteBefore:  "DeleteBefore",
	CommandDeleteAfter:   "DeleteAfter",
	CommandMoveUp:        "MoveUp",
	CommandMoveDown:      "MoveDown",
	CommandMoveLeft:      "MoveLeft",
	CommandMoveRight:     "MoveRight",
	CommandLineStart:     "LineStart",
	CommandLineEnd:       "LineEnd",
	CommandPageUp:        "PageUp",
	CommandPageDown:      "PageDown",
	CommandSave:          "Save",
	CommandQuit:          "Quit",
	CommandEscape:        "Escape",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "Unknown"
}

// A Command is one decoded user intent. Char is set only for CommandInsertChar.
type Command struct {
	Kind CommandKind
	Char byte
}
