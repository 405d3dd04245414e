package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/akamensky/argparse"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	"gitlab.com/pnathan/wordtrie/src/lib/completeapi"
	"gitlab.com/pnathan/wordtrie/src/lib/completer"
	"gitlab.com/pnathan/wordtrie/src/lib/config"
	"gitlab.com/pnathan/wordtrie/src/lib/log"
	"gitlab.com/pnathan/wordtrie/src/lib/utility/trie"
	"gitlab.com/pnathan/wordtrie/src/lib/wordstore"
)

var GLOBAL_COMPLETER *completer.Completer

// GLOBAL_WORDSETS is nil unless a bolt database is configured.
var GLOBAL_WORDSETS *wordstore.BoltStore

var GLOBAL_CONFIG *config.Config

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		log.Error("encoding failure", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(bytes)
}

func complete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prefix := query.Get("prefix")

	limit := GLOBAL_CONFIG.Complete.MaxResults
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("bad limit"))
			return
		}
		if limit == 0 || (n > 0 && n < limit) {
			limit = n
		}
	}

	res := GLOBAL_COMPLETER.Complete(prefix, limit)
	writeJSON(w, &completeapi.Completion{
		Prefix:  prefix,
		Words:   res.Words,
		Count:   res.Total,
		Version: res.Version,
	})
}

func getWords(w http.ResponseWriter, r *http.Request) {
	idx := GLOBAL_COMPLETER.Current()
	writeJSON(w, &completeapi.WordList{
		Words:   idx.Store.Words(),
		Version: idx.Store.Fingerprint(),
	})
}

// putWords replaces the word list, rebuilds, and persists the list when a
// database is configured.
func putWords(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)

	input := completeapi.WordList{}
	if err := decoder.Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("couldn't decode"))
		return
	}

	store, err := wordstore.New(input.Words)
	if err != nil {
		log.Info("rejected word list", zap.Error(err))
		w.WriteHeader(http.StatusNotAcceptable)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	idx, err := completer.Build(store)
	if err != nil {
		if errors.Is(err, trie.ErrNoWords) || errors.Is(err, trie.ErrEmptyWord) {
			w.WriteHeader(http.StatusNotAcceptable)
			_, _ = w.Write([]byte(err.Error()))
			return
		}
		log.Error("rebuild failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("error"))
		return
	}

	// the saved set and the served index only change together.
	if GLOBAL_WORDSETS != nil {
		if err := GLOBAL_WORDSETS.Save(GLOBAL_CONFIG.Words.Set, store); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("not saved, index unchanged"))
			return
		}
	}
	GLOBAL_COMPLETER.Publish(idx)
	_, _ = w.Write([]byte("ok"))
}

func statistics(w http.ResponseWriter, r *http.Request) {
	s := GLOBAL_COMPLETER.Statistics()
	writeJSON(w, &completeapi.Statistics{
		Words:       s.Words,
		Trie:        s.Trie,
		Queries:     s.Queries,
		Reloads:     s.Reloads,
		Version:     s.Version,
		BuildMillis: s.BuildTime.Milliseconds(),
	})
}

func Default(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ok")
}

func Wut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "your content is in another url")
}

type requestIDKey struct{}

func requestIDHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func loggerHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		id, _ := r.Context().Value(requestIDKey{}).(string)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", id),
			zap.Duration("took", time.Since(start)))
	})
}

func newRouter() http.Handler {
	r := mux.NewRouter()
	chain := alice.New(requestIDHandler, loggerHandler)
	r.HandleFunc("/healthz", Default)
	r.HandleFunc("/api/complete", complete).Methods("GET")
	r.HandleFunc("/api/words", getWords).Methods("GET")
	r.HandleFunc("/api/words", putWords).Methods("PUT")
	r.HandleFunc("/api/statistics", statistics).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(Wut)
	return chain.Then(r)
}

// loadIndex picks the word source: the file if given, else the named set
// in the database. A file load is copied into the database when one is
// configured, but only once it has built, so a bad file never replaces a
// good saved set.
func loadIndex(cfg *config.Config) (*completer.Completer, error) {
	if cfg.Words.File == "" {
		store, err := GLOBAL_WORDSETS.Load(cfg.Words.Set)
		if err != nil {
			return nil, err
		}
		return completer.New(store)
	}

	store, err := wordstore.LoadFile(cfg.Words.File)
	if err != nil {
		return nil, err
	}
	c, err := completer.New(store)
	if err != nil {
		return nil, err
	}
	if GLOBAL_WORDSETS != nil {
		if err := GLOBAL_WORDSETS.Save(cfg.Words.Set, store); err != nil {
			return nil, err
		}
	}
	return c, nil
}

//////////////////////////////////////////////////////////////
func main() {
	if err := run(); err != nil {
		log.Error("server failure", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// run returns instead of exiting so that its deferred closes happen.
func run() error {
	parser := argparse.NewParser("wordtrie-server", "serves prefix completions over a word list")

	configFile := parser.String("c", "config", &argparse.Options{Required: false, Help: "config file (yaml, json or toml)"})
	host := parser.String("i", "ip", &argparse.Options{Required: false, Help: "ip to bind to"})
	port := parser.Int("p", "port", &argparse.Options{Required: false, Help: "port to bind to"})
	words := parser.String("w", "words", &argparse.Options{Required: false, Help: "word file, one word per line"})
	db := parser.String("d", "db", &argparse.Options{Required: false, Help: "bolt database holding word sets"})
	set := parser.String("s", "set", &argparse.Options{Required: false, Help: "word set name in the database"})
	level := parser.String("l", "log-level", &argparse.Options{Required: false, Help: "debug, info, warn or error"})
	// Parse input
	err := parser.Parse(os.Args)
	if err != nil {
		// In case of error print error and print usage
		// This can also be done by passing -h or --help flags
		fmt.Print(parser.Usage(err))
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *words != "" {
		cfg.Words.File = *words
	}
	if *db != "" {
		cfg.Words.DB = *db
	}
	if *set != "" {
		cfg.Words.Set = *set
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	defer log.Sync()
	GLOBAL_CONFIG = cfg

	if cfg.Words.DB != "" {
		GLOBAL_WORDSETS, err = wordstore.OpenBolt(cfg.Words.DB)
		if err != nil {
			return fmt.Errorf("unable to open word database: %w", err)
		}
		defer GLOBAL_WORDSETS.Close()
	}

	GLOBAL_COMPLETER, err = loadIndex(cfg)
	if err != nil {
		return fmt.Errorf("unable to load index: %w", err)
	}

	log.Printf("Good morning. I am listening on %s:%d", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Handler:      newRouter(),
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return srv.ListenAndServe()
}
