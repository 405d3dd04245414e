package trie

import "fmt"

// Validate walks the whole tree and checks the rules construction is meant
// to keep: each word spelled by exactly one leaf, siblings starting with
// distinct bytes, and no pass-through nodes. Any failure wraps
// ErrStructuralViolation.
func (t *Trie) Validate() error {
	seen := make([]int, t.words.Len())
	if err := t.validate(rootID, 0, seen); err != nil {
		return err
	}
	for i, count := range seen {
		if count != 1 {
			return fmt.Errorf("%w: word %d %q has %d leaves", ErrStructuralViolation, i, t.words.At(i), count)
		}
	}
	return nil
}

func (t *Trie) validate(id NodeID, depth int, seen []int) error {
	n := &t.nodes[id]
	if id != rootID && len(n.ends) == 0 && len(n.children) < 2 {
		return fmt.Errorf("%w: node %d %v has %d children and ends no word", ErrStructuralViolation, id, n.label, len(n.children))
	}

	for _, w := range n.ends {
		if id == rootID {
			return fmt.Errorf("%w: word %d ends at the root", ErrStructuralViolation, w)
		}
		if got := t.Spell(Leaf{Word: w, Node: id}); got != t.words.At(w) {
			return fmt.Errorf("%w: word %d spells %q, want %q", ErrStructuralViolation, w, got, t.words.At(w))
		}
		seen[w]++
	}

	first := map[byte]NodeID{}
	for _, c := range n.children {
		child := &t.nodes[c]
		if child.parent != id {
			return fmt.Errorf("%w: node %d lists child %d whose parent is %d", ErrStructuralViolation, id, c, child.parent)
		}
		if child.label.Start != depth || child.label.End < child.label.Start {
			return fmt.Errorf("%w: node %d label %v at depth %d", ErrStructuralViolation, c, child.label, depth)
		}
		b := t.segment(c)[0]
		if other, ok := first[b]; ok {
			return fmt.Errorf("%w: siblings %d and %d both start with %q", ErrStructuralViolation, other, c, b)
		}
		first[b] = c
		if err := t.validate(c, child.label.End+1, seen); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarises the shape of a Trie.
type Stats struct {
	Nodes    int `json:"nodes"`
	Internal int `json:"internal"`
	Leaves   int `json:"leaves"`
	// Prefixed counts nodes that end a word and still have children.
	Prefixed int `json:"prefixed"`
	MaxDepth int `json:"max_depth"`
}

func (t *Trie) Stats() Stats {
	s := Stats{Nodes: len(t.nodes) - 1, Leaves: t.leaves}
	t.stats(rootID, 0, &s)
	return s
}

func (t *Trie) stats(id NodeID, depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	for _, c := range t.nodes[id].children {
		n := &t.nodes[c]
		if len(n.children) > 0 {
			s.Internal++
			if len(n.ends) > 0 {
				s.Prefixed++
			}
		}
		t.stats(c, depth+1, s)
	}
}
