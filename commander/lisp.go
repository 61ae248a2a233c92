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
	"os"
	"sync"

	"github.com/steelseries/golisp"

	gote "github.com/timburks/gote/types"
)

type primitive func(c *Commander, args *golisp.Data) (*golisp.Data, error)

// golisp primitives are registered once in its global environment, so they
// cannot close over a commander. They act on scriptTarget instead, which is
// set for the length of one ParseEval; scriptLock keeps a second evaluation
// from retargeting them while one is running.
var (
	registerOnce sync.Once
	scriptLock   sync.Mutex
	scriptTarget *Commander
)

func registerPrimitives() {
	define := func(name string, argCount string, f primitive) {
		golisp.MakePrimitiveFunction(name, argCount, func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			if scriptTarget == nil {
				return nil, fmt.Errorf("%s: no buffer", name)
			}
			return f(scriptTarget, args)
		})
	}
	move := func(direction int) primitive {
		return func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
			c.editor.MoveCursor(direction, 1)
			return nil, nil
		}
	}
	define("insert", "1", InsertImpl)
	define("newline", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return nil, c.editor.InsertNewline()
	})
	define("tab", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return nil, c.editor.InsertTab()
	})
	define("backspace", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return nil, ignoreBoundary(c.editor.BackspaceChar())
	})
	define("delete", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return nil, ignoreBoundary(c.editor.DeleteChar())
	})
	define("up", "0", move(gote.MoveUp))
	define("down", "0", move(gote.MoveDown))
	define("left", "0", move(gote.MoveLeft))
	define("right", "0", move(gote.MoveRight))
	define("line-start", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		c.editor.MoveToBeginningOfLine()
		return nil, nil
	})
	define("line-end", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		c.editor.MoveToEndOfLine()
		return nil, nil
	})
	define("goto", "2", GotoImpl)
	define("row", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return golisp.IntegerWithValue(int64(c.editor.GetCursor().Row)), nil
	})
	define("col", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return golisp.IntegerWithValue(int64(c.editor.GetCursor().Col)), nil
	})
	define("line-count", "0", func(c *Commander, args *golisp.Data) (*golisp.Data, error) {
		return golisp.IntegerWithValue(int64(c.editor.Buffer.GetRowCount())), nil
	})
	define("line", "1", LineImpl)
	define("save", "*", SaveImpl)
}

func ignoreBoundary(err error) error {
	if isBoundary(err) {
		return nil
	}
	return err
}

func InsertImpl(c *Commander, args *golisp.Data) (*golisp.Data, error) {
	val := golisp.Car(args)
	if !golisp.StringP(val) {
		return nil, errors.New("insert requires a string argument")
	}
	for _, ch := range []byte(golisp.StringValue(val)) {
		var err error
		switch ch {
		case '\n':
			err = c.editor.InsertNewline()
		case '\t':
			err = c.editor.InsertTab()
		default:
			err = c.editor.InsertChar(ch)
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func GotoImpl(c *Commander, args *golisp.Data) (*golisp.Data, error) {
	row, col := golisp.Car(args), golisp.Cadr(args)
	if !golisp.IntegerP(row) || !golisp.IntegerP(col) {
		return nil, errors.New("goto requires integer arguments")
	}
	c.editor.SetCursor(gote.Point{Row: int(golisp.IntegerValue(row)), Col: int(golisp.IntegerValue(col))})
	return nil, nil
}

func LineImpl(c *Commander, args *golisp.Data) (*golisp.Data, error) {
	val := golisp.Car(args)
	if !golisp.IntegerP(val) {
		return nil, errors.New("line requires an integer argument")
	}
	row := int(golisp.IntegerValue(val))
	if row < 0 || row >= c.editor.Buffer.GetRowCount() {
		return nil, fmt.Errorf("line %d: out of range", row)
	}
	return golisp.StringWithValue(c.editor.Buffer.TextAt(row)), nil
}

func SaveImpl(c *Commander, args *golisp.Data) (*golisp.Data, error) {
	var name string
	switch golisp.Length(args) {
	case 0:
	case 1:
		val := golisp.Car(args)
		if !golisp.StringP(val) {
			return nil, errors.New("save requires a string argument")
		}
		name = golisp.StringValue(val)
	default:
		return nil, errors.New("save takes at most one argument")
	}
	if err := c.editor.WriteFile(name); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.editor.Buffer.GetFileName()), nil
}

// ParseEval evaluates a script against the commander's editor and returns
// the printed value of its last expression.
func (c *Commander) ParseEval(script string) (string, error) {
	registerOnce.Do(registerPrimitives)
	scriptLock.Lock()
	defer scriptLock.Unlock()
	scriptTarget = c
	defer func() { scriptTarget = nil }()
	value, err := golisp.ParseAndEval("(begin\n" + script + "\n)")
	if err != nil {
		log.Printf("ERR %+v", err)
		return "", err
	}
	c.editor.Cursor.ClampTo(c.editor.Buffer)
	return golisp.String(value), nil
}

// ParseEvalFile evaluates the script stored in a file.
func (c *Commander) ParseEvalFile(path string) (string, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return c.ParseEval(string(script))
}
