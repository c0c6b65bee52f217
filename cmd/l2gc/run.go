package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l2lang/gcrt/internal/mutator"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a mutator script against the chosen collector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := newSession(os.Stdout)
			if err != nil {
				return err
			}
			defer s.heap.Close()

			prog := mutator.NewProgram(s.stack, s.heap, s.collector, os.Stdout, s.statsFn)
			if err := prog.Run(f); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "ok")
			return nil
		},
	}
}
