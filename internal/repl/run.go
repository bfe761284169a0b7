package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/peterh/liner"
)

const (
	promptMain = "> "
	banner     = "calculator: Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
)

// commands lists the command names offered for completion.
var commands = []string{
	":help", ":quit", ":def", ":undef", ":const", ":unconst", ":op", ":ops",
	":funcs", ":consts", ":deg", ":rad", ":frac", ":dec", ":postfix", ":load",
	":m+", ":m-", ":m*", ":m/", ":mc", ":mr",
}

// Run reads lines from the terminal until end of input or :quit, executing
// each and writing results to w. If historyPath is not empty, line history
// is loaded from it first and saved to it afterward.
func (s *Session) Run(ctx context.Context, w io.Writer, historyPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(s.complete)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(w, banner)
	for ctx.Err() == nil {
		line, err := ln.Prompt(promptMain)
		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(w)
			return nil
		default:
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.Execute(ctx, line, w) {
			return nil
		}
	}
	return ctx.Err()
}

// complete offers commands, functions, and constants which complete the word
// under the cursor.
func (s *Session) complete(line string, pos int) (head string, completions []string, tail string) {
	head, tail = line[:pos], line[pos:]
	k := strings.LastIndexFunc(head, func(r rune) bool {
		return r != ':' && r != '_' && !isWordRune(r)
	})
	word := head[k+1:]
	head = head[:k+1]
	if word == "" {
		return head, nil, tail
	}
	var cands []string
	if strings.HasPrefix(word, ":") {
		cands = commands
	} else {
		cands = append(s.calc.Functions().Names(), s.calc.Constants().Names()...)
		cands = append(cands, AnswerName, MemoryName)
	}
	for _, c := range cands {
		if strings.HasPrefix(c, word) && !slices.Contains(completions, c) {
			completions = append(completions, c)
		}
	}
	slices.Sort(completions)
	return head, completions, tail
}

func isWordRune(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r > 0x7f
}
