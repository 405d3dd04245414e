// Package wordstore holds the ordered, immutable word lists that tries are
// built over, and loads them from text files or bolt databases.
package wordstore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/sha3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gitlab.com/pnathan/wordtrie/src/lib/utility"
)

var ErrInvalidWord = errors.New("invalid word")

// Store is an ordered word list. It is never modified after New, so tries
// may borrow its strings for as long as they like.
type Store struct {
	words       []string
	fingerprint string
}

// New validates and copies words.
func New(words []string) (*Store, error) {
	lower := cases.Lower(language.Und)
	for i, w := range words {
		if err := check(lower, w); err != nil {
			return nil, fmt.Errorf("word %d %q: %w", i, w, err)
		}
	}
	s := &Store{words: append([]string(nil), words...)}
	s.fingerprint = fingerprint(s.words)
	return s, nil
}

// check accepts a non empty, already lower case word with no white space.
func check(lower cases.Caser, w string) error {
	if w == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWord)
	}
	if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: contains white space", ErrInvalidWord)
	}
	if lower.String(w) != w {
		return fmt.Errorf("%w: not lower case", ErrInvalidWord)
	}
	return nil
}

func (s *Store) Len() int {
	return len(s.words)
}

func (s *Store) At(i int) string {
	return s.words[i]
}

// Words returns a copy of the list.
func (s *Store) Words() []string {
	return append([]string(nil), s.words...)
}

// Fingerprint is a hex content hash of the ordered list. Two stores with
// the same words in the same order share it.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

func fingerprint(words []string) string {
	buf := utility.Concat(utility.UintToBytes(uint64(len(words))), utility.LengthPrefixed(words))
	h := make([]byte, 32)
	sha3.ShakeSum256(h, buf)
	return hex.EncodeToString(h)
}
