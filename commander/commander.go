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
	"fmt"
	"log"
	"time"

	"github.com/timburks/gote/editor"
	gote "github.com/timburks/gote/types"
)

// DefaultHint is shown in the message bar when there is no status message.
const DefaultHint = "HELP: Ctrl-S save | Ctrl-Q quit | Ctrl-A/D line start/end | PgUp/PgDn page"

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor      *editor.Editor
	decoder     *Decoder
	mode        int           // editor mode
	prompt      string        // file name as it is being typed
	message     string        // status message
	messageTime time.Time     // when the status message was set
	timeout     time.Duration // how long a status message is shown
	hint        string        // control hint shown when there is no message
	now         func() time.Time
}

// An Option adjusts a Commander.
type Option func(*Commander)

// WithMessageTimeout sets how long status messages stay visible.
func WithMessageTimeout(d time.Duration) Option {
	return func(c *Commander) { c.timeout = d }
}

// WithHint replaces the control hint.
func WithHint(hint string) Option {
	return func(c *Commander) {
		if hint != "" {
			c.hint = hint
		}
	}
}

func NewCommander(e *editor.Editor, options ...Option) *Commander {
	c := &Commander{
		editor:  e,
		decoder: NewDecoder(),
		mode:    gote.ModeEdit,
		timeout: 5 * time.Second,
		hint:    DefaultHint,
		now:     time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) IsRunning() bool {
	return c.mode != gote.ModeQuit
}

func (c *Commander) GetPrompt() string {
	return c.prompt
}

// SetMessage shows a status message in the message bar.
func (c *Commander) SetMessage(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
	c.messageTime = c.now()
}

// GetMessage returns the text for the message bar: the prompt while a
// file name is being entered, a recent status message, or the hint.
func (c *Commander) GetMessage() string {
	if c.mode == gote.ModePrompt {
		return "Save as: " + c.prompt + "  (Enter to save, Esc to cancel)"
	}
	if c.message != "" && c.now().Sub(c.messageTime) < c.timeout {
		return c.message
	}
	return c.hint
}

// ProcessInput decodes a chunk of raw input and performs the resulting commands.
func (c *Commander) ProcessInput(chunk []byte) {
	for _, command := range c.decoder.Feed(chunk) {
		c.ProcessCommand(command)
		if !c.IsRunning() {
			return
		}
	}
}

func (c *Commander) ProcessCommand(command gote.Command) {
	switch c.mode {
	case gote.ModeEdit:
		c.ProcessCommandEditMode(command)
	case gote.ModePrompt:
		c.ProcessCommandPromptMode(command)
	}
	// the cursor is valid before anything is drawn
	c.editor.Cursor.ClampTo(c.editor.Buffer)
}

func (c *Commander) ProcessCommandEditMode(command gote.Command) {
	e := c.editor
	var err error
	switch command.Kind {
	case gote.CommandInsertChar:
		err = e.InsertChar(command.Char)
	case gote.CommandInsertNewline:
		err = e.InsertNewline()
	case gote.CommandInsertTab:
		err = e.InsertTab()
	case gote.CommandDeleteBefore:
		err = e.BackspaceChar()
	case gote.CommandDeleteAfter:
		err = e.DeleteChar()
	case gote.CommandMoveUp:
		e.MoveCursor(gote.MoveUp, 1)
	case gote.CommandMoveDown:
		e.MoveCursor(gote.MoveDown, 1)
	case gote.CommandMoveLeft:
		e.MoveCursor(gote.MoveLeft, 1)
	case gote.CommandMoveRight:
		e.MoveCursor(gote.MoveRight, 1)
	case gote.CommandLineStart:
		e.MoveToBeginningOfLine()
	case gote.CommandLineEnd:
		e.MoveToEndOfLine()
	case gote.CommandPageUp:
		e.PageUp()
	case gote.CommandPageDown:
		e.PageDown()
	case gote.CommandSave:
		c.Save()
	case gote.CommandQuit:
		if e.Buffer.Dirty() {
			log.Printf("quitting with unsaved changes to %s", e.Buffer.GetName())
		}
		c.mode = gote.ModeQuit
	}
	if err != nil && !isBoundary(err) {
		log.Printf("%s: %v", command.Kind, err)
	}
}

// isBoundary reports a delete at either end of the document, which does nothing.
func isBoundary(err error) bool {
	return errors.Is(err, editor.ErrStartOfDocument) || errors.Is(err, editor.ErrEndOfDocument)
}

func (c *Commander) ProcessCommandPromptMode(command gote.Command) {
	switch command.Kind {
	case gote.CommandEscape:
		c.prompt = ""
		c.mode = gote.ModeEdit
		c.SetMessage("Save aborted")
	case gote.CommandInsertNewline:
		if c.prompt == "" {
			return
		}
		name := c.prompt
		c.prompt = ""
		c.mode = gote.ModeEdit
		c.writeFile(name)
	case gote.CommandDeleteBefore:
		if len(c.prompt) > 0 {
			c.prompt = c.prompt[0 : len(c.prompt)-1]
		}
	case gote.CommandInsertChar:
		c.prompt += string(command.Char)
	case gote.CommandQuit:
		c.mode = gote.ModeQuit
	}
}

// Save writes the buffer to its file, first asking for a name if it has none.
func (c *Commander) Save() {
	if c.editor.Buffer.GetFileName() == "" {
		c.mode = gote.ModePrompt
		c.prompt = ""
		return
	}
	c.writeFile("")
}

func (c *Commander) writeFile(name string) {
	e := c.editor
	if err := e.WriteFile(name); err != nil {
		log.Printf("save failed: %v", err)
		c.SetMessage("Save failed: %v", err)
		return
	}
	c.SetMessage("%q %d lines written", e.Buffer.GetFileName(), e.Buffer.GetRowCount())
}

// Run is the edit loop. Each turn draws the screen, blocks for input,
// and performs the decoded commands, until a quit command is seen.
func (c *Commander) Run(t gote.Terminal) error {
	for c.IsRunning() {
		if err := c.Render(t); err != nil {
			return err
		}
		chunk, err := t.ReadInput()
		if err != nil {
			log.Printf("read input: %v", err)
			return err
		}
		c.ProcessInput(chunk)
	}
	return nil
}
