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
	gote "github.com/timburks/gote/types"
)

const (
	keyEsc       = 0x1b
	keyBackspace = 0x7f
	keyCtrlA     = 0x01
	keyCtrlD     = 0x04
	keyCtrlH     = 0x08
	keyCtrlQ     = 0x11
	keyCtrlS     = 0x13

	// longest escape sequence kept before it is thrown away
	maxSequenceLength = 16
)

// Escape sequences that the decoder understands, keyed by the bytes that
// follow ESC.
var sequences = map[string]gote.CommandKind{
	"[A":    gote.CommandMoveUp,
	"[B":    gote.CommandMoveDown,
	"[C":    gote.CommandMoveRight,
	"[D":    gote.CommandMoveLeft,
	"OA":    gote.CommandMoveUp,
	"OB":    gote.CommandMoveDown,
	"OC":    gote.CommandMoveRight,
	"OD":    gote.CommandMoveLeft,
	"[3~":   gote.CommandDeleteAfter,
	"[H":    gote.CommandLineStart,
	"[F":    gote.CommandLineEnd,
	"OH":    gote.CommandLineStart,
	"OF":    gote.CommandLineEnd,
	"[1~":   gote.CommandLineStart,
	"[4~":   gote.CommandLineEnd,
	"[7~":   gote.CommandLineStart,
	"[8~":   gote.CommandLineEnd,
	"[5~":   gote.CommandPageUp,
	"[6~":   gote.CommandPageDown,
	"[1;5A": gote.CommandPageUp,
	"[1;5B": gote.CommandPageDown,
}

// Single control bytes with a meaning of their own.
var controls = map[byte]gote.CommandKind{
	'\r':         gote.CommandInsertNewline,
	'\n':         gote.CommandInsertNewline,
	'\t':         gote.CommandInsertTab,
	keyBackspace: gote.CommandDeleteBefore,
	keyCtrlH:     gote.CommandDeleteBefore,
	keyCtrlQ:     gote.CommandQuit,
	keyCtrlS:     gote.CommandSave,
	keyCtrlA:     gote.CommandLineStart,
	keyCtrlD:     gote.CommandLineEnd,
}

type decoderState int

const (
	stateNormal decoderState = iota
	stateEscape
)

// A Decoder turns raw terminal bytes into commands.
//
// It has two states. In the normal state each byte maps directly to a
// command or is ignored. ESC switches to the escape state, where bytes
// collect until a final byte completes a sequence, which is then looked
// up in the sequence table. Unknown sequences produce nothing. State is
// kept between calls to Feed, so a sequence split across reads still
// decodes.
type Decoder struct {
	state   decoderState
	pending []byte
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Pending reports whether the decoder is inside an escape sequence.
func (d *Decoder) Pending() bool {
	return d.state == stateEscape
}

// Feed decodes one chunk of input as delivered by a single terminal read.
// A lone ESC at the end of a chunk had nothing follow it, so it is
// reported as CommandEscape.
func (d *Decoder) Feed(chunk []byte) []gote.Command {
	var commands []gote.Command
	for _, c := range chunk {
		if command, ok := d.DecodeByte(c); ok {
			commands = append(commands, command)
		}
	}
	if d.state == stateEscape && len(d.pending) == 0 && len(chunk) > 0 {
		d.reset()
		commands = append(commands, gote.Command{Kind: gote.CommandEscape})
	}
	return commands
}

// DecodeByte advances the state machine by one byte and returns a command
// when one is complete.
func (d *Decoder) DecodeByte(c byte) (gote.Command, bool) {
	switch d.state {
	case stateEscape:
		return d.decodeEscape(c)
	default:
		return d.decodeNormal(c)
	}
}

func (d *Decoder) decodeNormal(c byte) (gote.Command, bool) {
	if c == keyEsc {
		d.state = stateEscape
		d.pending = d.pending[:0]
		return gote.Command{}, false
	}
	if kind, ok := controls[c]; ok {
		return gote.Command{Kind: kind}, true
	}
	if c >= 0x20 && c < 0x7f {
		return gote.Command{Kind: gote.CommandInsertChar, Char: c}, true
	}
	return gote.Command{}, false
}

func (d *Decoder) decodeEscape(c byte) (gote.Command, bool) {
	if len(d.pending) == 0 {
		switch c {
		case '[', 'O':
			d.pending = append(d.pending, c)
			return gote.Command{}, false
		case keyEsc:
			// a second ESC restarts the sequence
			return gote.Command{}, false
		default:
			// not a sequence: drop the ESC and read c normally
			d.reset()
			return d.decodeNormal(c)
		}
	}
	d.pending = append(d.pending, c)
	if !isFinal(d.pending[0], c) {
		if len(d.pending) >= maxSequenceLength {
			d.reset()
		}
		return gote.Command{}, false
	}
	kind, ok := sequences[string(d.pending)]
	d.reset()
	if !ok {
		return gote.Command{}, false
	}
	return gote.Command{Kind: kind}, true
}

// isFinal reports whether c ends a sequence that began with introducer.
// SS3 sequences (ESC O) are always one byte long; CSI sequences (ESC [)
// end with a byte in 0x40-0x7e.
func isFinal(introducer byte, c byte) bool {
	if introducer == 'O' {
		return true
	}
	return c >= 0x40 && c <= 0x7e
}

func (d *Decoder) reset() {
	d.state = stateNormal
	d.pending = d.pending[:0]
}
