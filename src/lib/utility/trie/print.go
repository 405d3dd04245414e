package trie

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented dump of the tree, one node per line: the text
// spelled so far, the label triple, and the indices of words ending there.
func (t *Trie) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "root"); err != nil {
		return err
	}
	return t.print(w, rootID, 1)
}

func (t *Trie) print(w io.Writer, id NodeID, indent int) error {
	pad := strings.Repeat("    ", indent)
	for _, c := range t.nodes[id].children {
		n := &t.nodes[c]
		spelled := t.words.At(n.label.Word)[:n.label.End+1]
		line := fmt.Sprintf("%s%s %v", pad, spelled, n.label)
		if len(n.ends) > 0 {
			line += fmt.Sprintf(" ends=%v", n.ends)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := t.print(w, c, indent+1); err != nil {
			return err
		}
	}
	return nil
}
