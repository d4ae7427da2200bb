package domain

import (
	"errors"
	"fmt"
)

var ErrDuplicateLabel = errors.New("duplicate label")

// Kind tells which side of the node union is populated.
type Kind uint8

const (
	KindInterior Kind = iota + 1 // labelled children
	KindLeaf                     // list of options
)

func (k Kind) String() string {
	switch k {
	case KindInterior:
		return "interior"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Entry is one labelled child of an interior node.
type Entry struct {
	Label string
	Node  *Node
}

// Node is a category tree node. It is either an interior node holding
// labelled children in source order, or a leaf holding option strings.
// Nodes are never mutated after construction.
type Node struct {
	kind     Kind
	children []Entry
	index    map[string]int
	options  []string
}

// NewLeaf returns a leaf holding the given options in order. Duplicates are
// kept as given; filtering treats them as a set.
func NewLeaf(options ...string) *Node {
	return &Node{
		kind:    KindLeaf,
		options: append([]string{}, options...),
	}
}

// NewInterior returns an interior node with the given children in order.
func NewInterior(entries ...Entry) (*Node, error) {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, exists := index[e.Label]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, e.Label)
		}
		if e.Node == nil {
			return nil, fmt.Errorf("child %q has no node", e.Label)
		}
		index[e.Label] = i
	}

	return &Node{
		kind:     KindInterior,
		children: append([]Entry{}, entries...),
		index:    index,
	}, nil
}

// MustInterior is NewInterior for trees known to be valid at compile time.
func MustInterior(entries ...Entry) *Node {
	n, err := NewInterior(entries...)
	if err != nil {
		panic(err)
	}
	return n
}

// newInteriorUnchecked skips the label checks; callers pass entries taken
// from an already valid node.
func newInteriorUnchecked(entries []Entry) *Node {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Label] = i
	}
	return &Node{kind: KindInterior, children: entries, index: index}
}

func (n *Node) Kind() Kind {
	if n == nil {
		return 0
	}
	return n.kind
}

func (n *Node) IsLeaf() bool {
	return n.Kind() == KindLeaf
}

// Len is the number of children of an interior node or options of a leaf.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindInterior:
		return len(n.children)
	case KindLeaf:
		return len(n.options)
	default:
		return 0
	}
}

// Children returns a copy of the labelled children. Leaves have none.
func (n *Node) Children() []Entry {
	if n.Kind() != KindInterior {
		return nil
	}
	return append([]Entry{}, n.children...)
}

// Labels returns child labels in source order.
func (n *Node) Labels() []string {
	if n.Kind() != KindInterior {
		return nil
	}
	labels := make([]string, len(n.children))
	for i, e := range n.children {
		labels[i] = e.Label
	}
	return labels
}

func (n *Node) Child(label string) (*Node, bool) {
	if n.Kind() != KindInterior {
		return nil, false
	}
	i, ok := n.index[label]
	if !ok {
		return nil, false
	}
	return n.children[i].Node, true
}

// Options returns a copy of a leaf's options. Interior nodes have none.
func (n *Node) Options() []string {
	if n.Kind() != KindLeaf {
		return nil
	}
	return append([]string{}, n.options...)
}

// Equal reports whether both trees have the same shape, labels and options
// in the same order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == nil && other == nil
	}
	if n.kind != other.kind {
		return false
	}

	switch n.kind {
	case KindLeaf:
		if len(n.options) != len(other.options) {
			return false
		}
		for i := range n.options {
			if n.options[i] != other.options[i] {
				return false
			}
		}
		return true
	case KindInterior:
		if len(n.children) != len(other.children) {
			return false
		}
		for i := range n.children {
			if n.children[i].Label != other.children[i].Label {
				return false
			}
			if !n.children[i].Node.Equal(other.children[i].Node) {
				return false
			}
		}
		return true
	}

	return false
}

// TreeStats summarises a tree.
type TreeStats struct {
	Branches int `json:"branches"` // interior nodes, root included
	Leaves   int `json:"leaves"`
	Options  int `json:"options"` // distinct options per leaf, summed
}

func (n *Node) Stats() TreeStats {
	var stats TreeStats
	n.collectStats(&stats)
	return stats
}

func (n *Node) collectStats(stats *TreeStats) {
	switch n.Kind() {
	case KindInterior:
		stats.Branches++
		for _, e := range n.children {
			e.Node.collectStats(stats)
		}
	case KindLeaf:
		stats.Leaves++
		stats.Options += len(NewSelection(n.options...))
	}
}
