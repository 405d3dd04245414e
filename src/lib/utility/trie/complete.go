package trie

import "strings"

// Completions returns a leaf for every word starting with prefix, in no
// particular order. The empty prefix matches every word. No match gives an
// empty, non-nil slice.
func (t *Trie) Completions(prefix string) []Leaf {
	result := []Leaf{}
	return t.complete(rootID, 0, prefix, result)
}

// complete walks the children of id. depth is how many bytes of prefix the
// path to id has already matched.
func (t *Trie) complete(id NodeID, depth int, prefix string, acc []Leaf) []Leaf {
	for _, c := range t.nodes[id].children {
		seg := t.segment(c)
		rest := prefix[depth:]
		switch {
		case strings.HasPrefix(seg, rest):
			// prefix runs out inside this edge: the whole subtree matches.
			acc = t.collect(c, acc)
		case strings.HasPrefix(rest, seg):
			acc = t.complete(c, depth+len(seg), prefix, acc)
		}
	}
	return acc
}

func (t *Trie) collect(id NodeID, acc []Leaf) []Leaf {
	for _, w := range t.nodes[id].ends {
		acc = append(acc, Leaf{Word: w, Node: id})
	}
	for _, c := range t.nodes[id].children {
		acc = t.collect(c, acc)
	}
	return acc
}

// Complete is Completions resolved to the words themselves.
func (t *Trie) Complete(prefix string) []string {
	leaves := t.Completions(prefix)
	words := make([]string, 0, len(leaves))
	for _, l := range leaves {
		words = append(words, t.Word(l))
	}
	return words
}

// Exist reports whether s is one of the indexed words.
func (t *Trie) Exist(s string) bool {
	// definitionally the empty string is never a word here.
	if s == "" {
		return false
	}
	id := rootID
	depth := 0
	for depth < len(s) {
		next, ok := t.child(id, s[depth])
		if !ok {
			return false
		}
		seg := t.segment(next)
		if !strings.HasPrefix(s[depth:], seg) {
			return false
		}
		id = next
		depth += len(seg)
	}
	return len(t.nodes[id].ends) > 0
}

// child finds the child of id whose label starts with b. Siblings never
// share a first byte, so there is at most one.
func (t *Trie) child(id NodeID, b byte) (NodeID, bool) {
	for _, c := range t.nodes[id].children {
		label := t.nodes[c].label
		if t.words.At(label.Word)[label.Start] == b {
			return c, true
		}
	}
	return 0, false
}
