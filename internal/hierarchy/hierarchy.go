// Package hierarchy reconstructs parent-child account trees from flat
// records. The forest is arena-style: a map from code string to node plus
// explicit ordered child lists, so lookup stays O(1) and there are no
// object cycles to serialize around.
package hierarchy

import (
	"iter"

	"github.com/civicledger/munibudget/internal/code"
	"github.com/civicledger/munibudget/internal/model"
	"github.com/civicledger/munibudget/internal/report"
)

// Node is one ledger line placed in the tree. Children preserve input
// order; Parent is a back-reference by code string, never an ownership
// edge ("" for roots).
type Node struct {
	Record   model.AccountRecord
	Code     code.Code
	Parent   string
	Children []*Node
}

// Forest holds the assembled trees and the code index.
type Forest struct {
	roots []*Node
	index map[string]*Node
}

// Build assembles a forest from flat records in two passes: index every
// record by code, then attach each node to the parent its code derives.
//
// Recoverable problems go to the reporter and never abort the build:
// malformed codes drop the record, duplicate codes drop the second
// occurrence, and a node whose derived parent is absent from the dataset
// is promoted to a root instead of being lost.
func Build(records []model.AccountRecord, reporter *report.Reporter) *Forest {
	f := &Forest{index: make(map[string]*Node, len(records))}

	var ordered []*Node
	for _, rec := range records {
		parsed, err := code.Parse(rec.Code)
		if err != nil {
			reporter.Errorf(report.Issue{Kind: report.KindMalformedCode, Code: rec.Code},
				"skipping record: %v", err)
			continue
		}
		key := parsed.String()
		if _, exists := f.index[key]; exists {
			reporter.Errorf(report.Issue{Kind: report.KindDuplicateCode, Code: key},
				"duplicate account code %q: second occurrence dropped", key)
			continue
		}
		node := &Node{Record: rec, Code: parsed}
		f.index[key] = node
		ordered = append(ordered, node)
	}

	for _, node := range ordered {
		parentCode, ok := node.Code.Parent()
		if !ok {
			f.roots = append(f.roots, node)
			continue
		}
		parent, found := f.index[parentCode.String()]
		if !found {
			reporter.Warnf(report.Issue{Kind: report.KindDanglingParent, Code: node.Code.String()},
				"parent %q not in dataset: promoting %q to root", parentCode, node.Code)
			f.roots = append(f.roots, node)
			continue
		}
		node.Parent = parentCode.String()
		parent.Children = append(parent.Children, node)
	}

	return f
}

// Roots returns the top-level nodes in input order.
func (f *Forest) Roots() []*Node {
	return f.roots
}

// Lookup returns the node with the given code string.
func (f *Forest) Lookup(codeStr string) (*Node, bool) {
	n, ok := f.index[codeStr]
	return n, ok
}

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int {
	return len(f.index)
}

// All yields every node depth-first in document order: each root in input
// order, then its descendants before the next root. The sequence is
// restartable and finite.
func (f *Forest) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, root := range f.roots {
			if !walk(root, yield) {
				return
			}
		}
	}
}

// Descendants yields the subtree rooted at n, n first.
func Descendants(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walk(n, yield)
	}
}

func walk(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// Records flattens the forest back to flat records in document order, for
// persistence.
func (f *Forest) Records() []model.AccountRecord {
	out := make([]model.AccountRecord, 0, len(f.index))
	for n := range f.All() {
		out = append(out, n.Record)
	}
	return out
}
