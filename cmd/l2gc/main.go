// Command l2gc drives the L2 garbage collectors (internal/semispace,
// internal/marksweep) against a scripted or interactive mutator, the way
// cmd/viewcore drives the teacher's gocore library against a core file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagCollector  string
	flagHeapWords  int
	flagStackWords int
)

func main() {
	root := &cobra.Command{
		Use:   "l2gc",
		Short: "Run the L2 garbage collectors against a scripted mutator",
	}
	root.PersistentFlags().StringVar(&flagCollector, "collector", "semispace", "collector to use: semispace or marksweep")
	root.PersistentFlags().IntVar(&flagHeapWords, "heap-words", 64, "heap size in words (must be positive and even)")
	root.PersistentFlags().IntVar(&flagStackWords, "stack-words", 4096, "simulated mutator stack size in words")

	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
