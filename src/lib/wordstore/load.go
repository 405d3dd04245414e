package wordstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/pnathan/wordtrie/src/lib/log"
)

var ErrCountMismatch = errors.New("word count header does not match")

// ReadLines reads one word per line. Surrounding white space and blank
// lines are ignored. When the first line is a bare number it is taken as
// the word count and checked against what follows.
func ReadLines(r io.Reader) (*Store, error) {
	scanner := bufio.NewScanner(r)
	words := []string{}
	expected := -1
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if n, err := strconv.Atoi(line); err == nil && n >= 0 {
				expected = n
				continue
			}
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if expected >= 0 && expected != len(words) {
		return nil, fmt.Errorf("%w: header says %d, read %d", ErrCountMismatch, expected, len(words))
	}
	return New(words)
}

func LoadFile(filename string) (*Store, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadLines(f)
	if err != nil {
		log.Error("unable to read word file", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	log.Info("word file read", zap.String("filename", filename), zap.Int("words", s.Len()))
	return s, nil
}
