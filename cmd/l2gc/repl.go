package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/l2lang/gcrt/internal/mutator"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively drive a collector one mutator command at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(os.Stdout)
			if err != nil {
				return err
			}
			defer s.heap.Close()

			histFile := ""
			if home, err := os.UserHomeDir(); err == nil {
				histFile = filepath.Join(home, ".l2gc_history")
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "l2gc> ",
				HistoryFile:     histFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			prog := mutator.NewProgram(s.stack, s.heap, s.collector, os.Stdout, s.statsFn)
			return replLoop(rl, prog)
		},
	}
}

func replLoop(rl *readline.Instance, prog *mutator.Program) error {
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := prog.Run(strings.NewReader(line)); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
