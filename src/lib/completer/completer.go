// Package completer publishes a built trie to concurrent readers and swaps
// in a freshly built one when the word list changes.
package completer

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"gitlab.com/pnathan/wordtrie/src/lib/log"
	"gitlab.com/pnathan/wordtrie/src/lib/utility/trie"
	"gitlab.com/pnathan/wordtrie/src/lib/wordstore"
)

// Index is one published build: the word list and the trie over it.
type Index struct {
	Store     *wordstore.Store
	Trie      *trie.Trie
	BuildTime time.Duration
}

// Completer holds the current Index. A published Index is never changed;
// Reload replaces it whole.
type Completer struct {
	current *Index
	Mutex   sync.RWMutex

	queries atomic.Int64
	reloads atomic.Int64
}

// Build indexes s and checks the result before handing it out.
func Build(s *wordstore.Store) (*Index, error) {
	start := time.Now()
	t, err := trie.Build(s)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	idx := &Index{Store: s, Trie: t, BuildTime: time.Since(start)}
	log.Info("index built",
		zap.Int("words", s.Len()),
		zap.Int("nodes", t.Stats().Nodes),
		zap.Duration("took", idx.BuildTime),
		zap.String("version", s.Fingerprint()))
	return idx, nil
}

func New(s *wordstore.Store) (*Completer, error) {
	idx, err := Build(s)
	if err != nil {
		return nil, err
	}
	return &Completer{current: idx}, nil
}

func (c *Completer) Current() *Index {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()
	return c.current
}

// Reload builds s and swaps it in. On failure the old index stays.
func (c *Completer) Reload(s *wordstore.Store) error {
	idx, err := Build(s)
	if err != nil {
		log.Warn("reload rejected", zap.Error(err))
		return fmt.Errorf("reload: %w", err)
	}
	c.Publish(idx)
	return nil
}

// Publish swaps in an index made by Build. Callers that must persist the
// word list first build, save, then publish.
func (c *Completer) Publish(idx *Index) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	c.current = idx
	c.reloads.Add(1)
}

// Result is the answer to one completion query.
type Result struct {
	Words   []string
	Total   int
	Version string
}

// Complete returns the words starting with prefix, sorted. limit <= 0
// means no limit; Total is the count before truncation.
func (c *Completer) Complete(prefix string, limit int) Result {
	idx := c.Current()
	c.queries.Add(1)

	words := idx.Trie.Complete(prefix)
	sort.Strings(words)
	total := len(words)
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	log.Debug("completion", zap.String("prefix", prefix), zap.Int("matches", total))
	return Result{Words: words, Total: total, Version: idx.Store.Fingerprint()}
}

type Statistics struct {
	Words     int
	Trie      trie.Stats
	Queries   int64
	Reloads   int64
	Version   string
	BuildTime time.Duration
}

func (c *Completer) Statistics() Statistics {
	idx := c.Current()
	return Statistics{
		Words:     idx.Store.Len(),
		Trie:      idx.Trie.Stats(),
		Queries:   c.queries.Load(),
		Reloads:   c.reloads.Load(),
		Version:   idx.Store.Fingerprint(),
		BuildTime: idx.BuildTime,
	}
}
