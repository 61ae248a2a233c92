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
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/timburks/gote/commander"
	"github.com/timburks/gote/config"
	"github.com/timburks/gote/editor"
	"github.com/timburks/gote/screen"
)

const usage = "usage: gote [--eval script] [--driver termbox|ansi] [file]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("gote", flag.ContinueOnError)
	flags.SetOutput(stderr)
	script := flags.String("eval", "", "run a lisp script against the file and exit")
	driver := flags.String("driver", "", "terminal driver (termbox or ansi)")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() > 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "gote: config: %v\n", err)
	}
	if *driver == "" {
		*driver = cfg.Driver
	}

	// Open a log file; the terminal belongs to the editor.
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(f)
		defer f.Close()
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor()
	if flags.NArg() == 1 {
		filename := flags.Arg(0)
		if err := e.ReadFile(filename); err != nil {
			log.Printf("%v", err)
			fmt.Fprintf(stderr, "gote: %v\n", err)
			return 1
		}
		log.Printf("opened %s (%d lines)", filename, e.Buffer.GetRowCount())
	}

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e,
		commander.WithMessageTimeout(cfg.MessageDuration()),
		commander.WithHint(cfg.Hint))

	if *script != "" {
		// Run a gote script and exit.
		out, err := c.ParseEvalFile(*script)
		if err != nil {
			fmt.Fprintf(stderr, "gote: %s: %v\n", *script, err)
			return 1
		}
		fmt.Fprintln(stdout, out)
		return 0
	}

	t, err := screen.Open(*driver)
	if err != nil {
		log.Printf("open terminal: %v", err)
		fmt.Fprintf(stderr, "gote: %v\n", err)
		return 1
	}
	// Closing the terminal restores it, including when Run panics.
	defer t.Close()

	// Run the main event loop.
	if err := c.Run(t); err != nil {
		return 1
	}
	return 0
}
