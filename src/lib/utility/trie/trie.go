package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWords is returned by Build when given nothing to index.
	ErrNoWords = errors.New("trie: no words to build from")
	// ErrEmptyWord is returned by Build for a zero length word.
	ErrEmptyWord = errors.New("trie: empty word")
	// ErrStructuralViolation marks a tree that breaks its own shape rules.
	// It means a construction bug, not bad input.
	ErrStructuralViolation = errors.New("trie: structural violation")
)

// Words is the ordered word list a Trie borrows its characters from.
// It must not change for as long as the Trie is in use.
type Words interface {
	Len() int
	At(i int) string
}

// Slice adapts a plain string slice to Words.
type Slice []string

func (s Slice) Len() int {
	return len(s)
}

func (s Slice) At(i int) string {
	return s[i]
}

// EdgeLabel names the bytes Words.At(Word)[Start..End], End inclusive.
type EdgeLabel struct {
	Word  int
	Start int
	End   int
}

func (l EdgeLabel) String() string {
	return fmt.Sprintf("(%d,%d,%d)", l.Word, l.Start, l.End)
}

// NodeID is a stable handle into the node arena.
type NodeID int32

const rootID NodeID = 0

type node struct {
	label    EdgeLabel
	parent   NodeID
	children []NodeID
	// ends holds the input indices of the words spelled exactly by the
	// path to this node. More than one entry only for duplicate words.
	ends []int
}

// Leaf is the handle for a single input word: the node whose path spells it
// and the word's position in Words.
type Leaf struct {
	Word int
	Node NodeID
}

// Trie is a compressed prefix tree over a borrowed word list. Edges hold
// index ranges into the words, never copies of the text. A built Trie is
// read only and safe for concurrent use.
type Trie struct {
	words  Words
	nodes  []node
	leaves int
}

// New builds a Trie over ss.
func New(ss []string) (*Trie, error) {
	return Build(Slice(ss))
}

// Build inserts every word of words, first to last. Insertion order decides
// the tree's shape but not which words it answers for.
func Build(words Words) (*Trie, error) {
	n := words.Len()
	if n == 0 {
		return nil, ErrNoWords
	}
	for i := 0; i < n; i++ {
		if words.At(i) == "" {
			return nil, fmt.Errorf("word %d: %w", i, ErrEmptyWord)
		}
	}

	t := &Trie{
		words: words,
		nodes: make([]node, 1, 2*n),
	}
	for i := 0; i < n; i++ {
		t.insert(i)
	}
	return t, nil
}

func (t *Trie) newNode(label EdgeLabel, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{label: label, parent: parent})
	return id
}

func (t *Trie) addLeaf(parent NodeID, word, start int) {
	id := t.newNode(EdgeLabel{Word: word, Start: start, End: len(t.words.At(word)) - 1}, parent)
	t.nodes[id].ends = []int{word}
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.leaves++
}

func (t *Trie) markEnd(id NodeID, word int) {
	t.nodes[id].ends = append(t.nodes[id].ends, word)
	t.leaves++
}

// insert threads word i into the tree. Every step either descends one edge,
// or ends by appending a leaf, marking a node, or splitting an edge.
func (t *Trie) insert(i int) {
	w := t.words.At(i)
	parent := rootID
	start := 0

descend:
	for {
		if start == len(w) {
			// w ends exactly where the last consumed edge ends.
			t.markEnd(parent, i)
			return
		}
		for slot, c := range t.nodes[parent].children {
			label := t.nodes[c].label
			m := commonRun(w[start:], t.words.At(label.Word)[label.Start:label.End+1])
			if m == 0 {
				continue
			}
			if start+m-1 == label.End {
				parent = c
				start = label.End + 1
				continue descend
			}
			t.split(parent, slot, start+m, i)
			return
		}
		t.addLeaf(parent, i, start)
		return
	}
}

// split cuts the edge in parent's child slot at byte splitAt. A new node
// takes over the slot, owning the head of the old label; the old node keeps
// its subtree under the tail. Word i then either ends at the new node or
// hangs its remainder beside the old one.
func (t *Trie) split(parent NodeID, slot, splitAt, i int) {
	old := t.nodes[parent].children[slot]
	label := t.nodes[old].label

	mid := t.newNode(EdgeLabel{Word: label.Word, Start: label.Start, End: splitAt - 1}, parent)
	t.nodes[parent].children[slot] = mid
	t.nodes[old].label.Start = splitAt
	t.nodes[old].parent = mid
	t.nodes[mid].children = []NodeID{old}

	if splitAt == len(t.words.At(i)) {
		t.markEnd(mid, i)
		return
	}
	t.addLeaf(mid, i, splitAt)
}

func commonRun(a, b string) int {
	n := min(len(a), len(b))
	for k := 0; k < n; k++ {
		if a[k] != b[k] {
			return k
		}
	}
	return n
}

// Len is the number of leaves, one per input word including duplicates.
func (t *Trie) Len() int {
	return t.leaves
}

// Words returns the list the Trie was built over.
func (t *Trie) Words() Words {
	return t.words
}

// Word returns the input word a leaf stands for.
func (t *Trie) Word(l Leaf) string {
	return t.words.At(l.Word)
}

func (t *Trie) segment(id NodeID) string {
	label := t.nodes[id].label
	return t.words.At(label.Word)[label.Start : label.End+1]
}

// Spell rebuilds the text of a leaf by joining the labels on its path.
func (t *Trie) Spell(l Leaf) string {
	var parts []string
	for id := l.Node; id != rootID; id = t.nodes[id].parent {
		parts = append(parts, t.segment(id))
	}
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	buf := make([]byte, 0, size)
	for k := len(parts) - 1; k >= 0; k-- {
		buf = append(buf, parts[k]...)
	}
	return string(buf)
}
