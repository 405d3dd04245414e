package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"gitlab.com/pnathan/wordtrie/src/lib/completeapi"
	"gitlab.com/pnathan/wordtrie/src/lib/log"
	"gitlab.com/pnathan/wordtrie/src/lib/utility/trie"
	"gitlab.com/pnathan/wordtrie/src/lib/wordstore"
)

func MustMarshal(v any) []byte {
	b := new(bytes.Buffer)
	encoder := json.NewEncoder(b)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(v)
	if err != nil {
		panic(err)
	}

	return b.Bytes()
}

func Moan(complaint error) {
	log.Fatal("", zap.Error(complaint))
	os.Exit(1)
}

// dump builds a trie from a word file locally and prints its shape.
func dump(filename string) error {
	store, err := wordstore.LoadFile(filename)
	if err != nil {
		return err
	}
	t, err := trie.Build(store)
	if err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return t.Print(os.Stdout)
}

func importWords(filename, dbFile, set string) error {
	store, err := wordstore.LoadFile(filename)
	if err != nil {
		return err
	}
	db, err := wordstore.OpenBolt(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Save(set, store)
}

func main() {
	parser := argparse.NewParser("wordtrie client", "wordtrie client code")

	endpoint := parser.String("e", "endpoint", &argparse.Options{Required: false, Help: "endpoint to address", Default: "http://localhost:1337"})

	completeCmd := parser.NewCommand("complete", "list words starting with a prefix")
	prefix := completeCmd.String("x", "prefix", &argparse.Options{Required: false, Help: "prefix to complete; empty lists everything", Default: ""})
	limit := completeCmd.Int("n", "limit", &argparse.Options{Required: false, Help: "maximum words to return", Default: 0})

	wordsGet := parser.NewCommand("words-get", "get the word list")
	wordsPut := parser.NewCommand("words-put", "replace the word list")
	wordsFile := wordsPut.String("f", "file", &argparse.Options{Required: true, Help: "word file, one word per line"})

	statsCmd := parser.NewCommand("stats", "get server statistics")

	dumpCmd := parser.NewCommand("dump", "build a trie from a word file locally and print it")
	dumpFile := dumpCmd.String("f", "file", &argparse.Options{Required: true, Help: "word file, one word per line"})

	importCmd := parser.NewCommand("import", "store a word file in a bolt database")
	importFile := importCmd.String("f", "file", &argparse.Options{Required: true, Help: "word file, one word per line"})
	importDB := importCmd.String("d", "db", &argparse.Options{Required: true, Help: "bolt database"})
	importSet := importCmd.String("s", "set", &argparse.Options{Required: false, Help: "word set name", Default: "default"})

	// Parse input
	err := parser.Parse(os.Args)
	if err != nil {
		// In case of error print error and print usage
		// This can also be done by passing -h or --help flags
		fmt.Print(parser.Usage(err))
		return
	}

	if completeCmd.Happened() {
		c, err := completeapi.GetCompletions(*prefix, *limit, *endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(c)))
	} else if wordsGet.Happened() {
		w, err := completeapi.GetWords(*endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(w)))
	} else if wordsPut.Happened() {
		store, err := wordstore.LoadFile(*wordsFile)
		if err != nil {
			Moan(err)
		}
		if err := completeapi.PutWords(&completeapi.WordList{Words: store.Words()}, *endpoint); err != nil {
			Moan(err)
		}
	} else if statsCmd.Happened() {
		s, err := completeapi.GetStatistics(*endpoint)
		if err != nil {
			Moan(err)
		}
		fmt.Println(string(MustMarshal(s)))
	} else if dumpCmd.Happened() {
		if err := dump(*dumpFile); err != nil {
			Moan(err)
		}
	} else if importCmd.Happened() {
		if err := importWords(*importFile, *importDB, *importSet); err != nil {
			Moan(err)
		}
	} else {
		Moan(fmt.Errorf("can't happen"))
	}
}
