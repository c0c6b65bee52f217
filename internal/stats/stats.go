// Package stats wraps the host ReportGCStats callback (spec.md §6) and
// gives the CLI a small breakdown tree to print, grounded on the teacher's
// Statistic group/leaf tree (internal/gocore/process.go's groupStat and
// leafStat), reused here for per-collector live-object/live-word
// breakdowns instead of per-mapping breakdowns of a core file.
package stats

import (
	"fmt"
	"io"
)

// Reporter is the host-provided telemetry callback: ReportGCStats(live
// objects, live words). It must be invoked exactly once per collection
// cycle (spec.md §6) and must not call back into the collector.
type Reporter interface {
	ReportGCStats(liveObjects, liveWords int64)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(liveObjects, liveWords int64)

func (f ReporterFunc) ReportGCStats(liveObjects, liveWords int64) { f(liveObjects, liveWords) }

// Discard is a Reporter that ignores every call; the zero value of most
// collectors' Reporter field should not be nil, so constructors default to
// this.
var Discard Reporter = ReporterFunc(func(int64, int64) {})

// Node is one entry in a breakdown tree: either a leaf with a value, or a
// group whose value is the sum of its children.
type Node struct {
	Name     string
	Value    int64
	Children []*Node
}

// Leaf builds a childless Node.
func Leaf(name string, value int64) *Node {
	return &Node{Name: name, Value: value}
}

// Group builds a Node whose value is the sum of its children's values.
func Group(name string, children ...*Node) *Node {
	var total int64
	for _, c := range children {
		total += c.Value
	}
	return &Node{Name: name, Value: total, Children: children}
}

// Print writes n as an indented breakdown to w.
func (n *Node) Print(w io.Writer) {
	n.print(w, "")
}

func (n *Node) print(w io.Writer, indent string) {
	fmt.Fprintf(w, "%s%s\t%d\n", indent, n.Name, n.Value)
	for _, c := range n.Children {
		c.print(w, indent+"  ")
	}
}
