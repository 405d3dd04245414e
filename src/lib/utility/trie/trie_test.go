package trie

import (
	"bytes"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var market = []string{"bear", "bell", "bull", "stock"}

var overlapping = []string{
	"bear", "bell", "bull", "stock", "stop", "sto", "s",
	"car", "carpet", "cart", "care", "careful", "bear",
	"cat", "catalog", "b", "be", "zebra", "carpets",
}

func mustNew(t *testing.T, words []string) *Trie {
	t.Helper()
	tr, err := New(words)
	require.NoError(t, err)
	require.NoError(t, tr.Validate())
	return tr
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  error
	}{
		{name: "nil", words: nil, want: ErrNoWords},
		{name: "empty", words: []string{}, want: ErrNoWords},
		{name: "empty word", words: []string{"a", ""}, want: ErrEmptyWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.words)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}

func TestCompletions(t *testing.T) {
	tr := mustNew(t, market)

	tests := []struct {
		prefix string
		want   []string
	}{
		{prefix: "b", want: []string{"bear", "bell", "bull"}},
		{prefix: "be", want: []string{"bear", "bell"}},
		{prefix: "bell", want: []string{"bell"}},
		{prefix: "sto", want: []string{"stock"}},
		{prefix: "c", want: []string{}},
		{prefix: "bells", want: []string{}},
		{prefix: "bx", want: []string{}},
		{prefix: "", want: market},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := tr.Complete(tt.prefix)
			assert.NotNil(t, got)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestMarketShape(t *testing.T) {
	tr := mustNew(t, market)
	assert.Equal(t, Stats{Nodes: 6, Internal: 2, Leaves: 4, MaxDepth: 3}, tr.Stats())

	var out bytes.Buffer
	require.NoError(t, tr.Print(&out))
	want := "root\n" +
		"    b (0,0,0)\n" +
		"        be (0,1,1)\n" +
		"            bear (0,2,3) ends=[0]\n" +
		"            bell (1,2,3) ends=[1]\n" +
		"        bull (2,1,3) ends=[2]\n" +
		"    stock (3,0,4) ends=[3]\n"
	assert.Equal(t, want, out.String())
}

func TestPrefixWord(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{name: "short first", words: []string{"car", "carpet"}},
		{name: "long first", words: []string{"carpet", "car"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mustNew(t, tt.words)

			root := tr.nodes[rootID]
			require.Len(t, root.children, 1)
			car := tr.nodes[root.children[0]]
			assert.Equal(t, "car", tr.segment(root.children[0]))
			assert.Len(t, car.ends, 1)
			require.Len(t, car.children, 1)
			assert.Equal(t, "pet", tr.segment(car.children[0]))

			assert.ElementsMatch(t, []string{"car", "carpet"}, tr.Complete("car"))
			assert.ElementsMatch(t, []string{"carpet"}, tr.Complete("carp"))
			assert.ElementsMatch(t, []string{"car", "carpet"}, tr.Complete("ca"))
			assert.Empty(t, tr.Complete("cars"))
			assert.Equal(t, 1, tr.Stats().Prefixed)
		})
	}
}

func TestSeedLeafExtended(t *testing.T) {
	tr := mustNew(t, []string{"car", "carpet"})
	car := tr.nodes[rootID].children[0]
	assert.Equal(t, EdgeLabel{Word: 0, Start: 0, End: 2}, tr.nodes[car].label)
	pet := tr.nodes[car].children[0]
	assert.Equal(t, EdgeLabel{Word: 1, Start: 3, End: 5}, tr.nodes[pet].label)
}

func TestDuplicates(t *testing.T) {
	tr := mustNew(t, []string{"bear", "bear", "be"})
	assert.Equal(t, 3, tr.Len())
	assert.ElementsMatch(t, []string{"bear", "bear", "be"}, tr.Complete("be"))
	assert.ElementsMatch(t, []string{"bear", "bear"}, tr.Complete("bea"))

	leaves := tr.Completions("bear")
	require.Len(t, leaves, 2)
	assert.Equal(t, leaves[0].Node, leaves[1].Node)
	assert.NotEqual(t, leaves[0].Word, leaves[1].Word)
}

func TestCoverage(t *testing.T) {
	tr := mustNew(t, overlapping)
	leaves := tr.Completions("")
	require.Len(t, leaves, len(overlapping))
	assert.Equal(t, len(overlapping), tr.Len())

	seen := map[int]bool{}
	for _, l := range leaves {
		assert.Equal(t, overlapping[l.Word], tr.Spell(l))
		assert.Equal(t, overlapping[l.Word], tr.Word(l))
		assert.False(t, seen[l.Word], "word %d returned twice", l.Word)
		seen[l.Word] = true
	}
}

func TestCompletionsMatchScan(t *testing.T) {
	tr := mustNew(t, overlapping)
	for _, w := range overlapping {
		for k := 0; k <= len(w)+1; k++ {
			prefix := w[:min(k, len(w))]
			if k > len(w) {
				prefix = w + "q"
			}
			assert.ElementsMatch(t, scan(overlapping, prefix), tr.Complete(prefix), "prefix %q", prefix)
		}
	}
}

func TestInsertionOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	reference := mustNew(t, overlapping)

	for round := 0; round < 20; round++ {
		shuffled := make([]string, len(overlapping))
		for i, j := range rng.Perm(len(overlapping)) {
			shuffled[i] = overlapping[j]
		}
		tr := mustNew(t, shuffled)
		for _, w := range overlapping {
			for k := 0; k <= len(w); k++ {
				want := sorted(reference.Complete(w[:k]))
				assert.Equal(t, want, sorted(tr.Complete(w[:k])), "order %v prefix %q", shuffled, w[:k])
			}
		}
	}
}

func TestExist(t *testing.T) {
	tr := mustNew(t, []string{
		"xoxox",
		"xoxox1",
		"xoxox2",
		"yoxox",
	})
	if tr.Exist("") {
		t.Errorf("found empty string")
	}

	missing := []string{"o", "x", "xo", "xoxo", "xoxox2-and", "yoxo"}
	for _, s := range missing {
		assert.False(t, tr.Exist(s), s)
	}
	for _, s := range []string{"xoxox", "xoxox1", "xoxox2", "yoxox"} {
		assert.True(t, tr.Exist(s), s)
	}
}

func TestValidateCatchesDamage(t *testing.T) {
	t.Run("shared first byte", func(t *testing.T) {
		tr := mustNew(t, market)
		root := &tr.nodes[rootID]
		root.children = append(root.children, root.children[0])
		assert.ErrorIs(t, tr.Validate(), ErrStructuralViolation)
	})
	t.Run("pass-through node", func(t *testing.T) {
		tr := mustNew(t, []string{"carpet", "car"})
		mid := tr.nodes[rootID].children[0]
		tr.nodes[mid].ends = nil
		assert.ErrorIs(t, tr.Validate(), ErrStructuralViolation)
	})
	t.Run("lost word", func(t *testing.T) {
		tr := mustNew(t, market)
		root := &tr.nodes[rootID]
		root.children = root.children[:1]
		assert.ErrorIs(t, tr.Validate(), ErrStructuralViolation)
	})
}

func TestConcurrentReaders(t *testing.T) {
	tr := mustNew(t, overlapping)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range overlapping {
				assert.Contains(t, tr.Complete(w), w)
			}
		}()
	}
	wg.Wait()
}

func scan(words []string, prefix string) []string {
	out := []string{}
	for _, w := range words {
		if len(w) >= len(prefix) && w[:len(prefix)] == prefix {
			out = append(out, w)
		}
	}
	return out
}

func sorted(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}
