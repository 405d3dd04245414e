package completeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"gitlab.com/pnathan/wordtrie/src/lib/log"
	"gitlab.com/pnathan/wordtrie/src/lib/utility/trie"
)

// Completion is the answer to a prefix query.
type Completion struct {
	Prefix string   `json:"prefix"`
	Words  []string `json:"words"`
	// Count is the number of matches before any limit was applied.
	Count   int    `json:"count"`
	Version string `json:"version"`
}

// WordList is the full ordered word list behind an index.
type WordList struct {
	Words   []string `json:"words"`
	Version string   `json:"version,omitempty"`
}

type Statistics struct {
	Words       int        `json:"words"`
	Trie        trie.Stats `json:"trie"`
	Queries     int64      `json:"queries"`
	Reloads     int64      `json:"reloads"`
	Version     string     `json:"version"`
	BuildMillis int64      `json:"build_ms"`
}

const (
	http_put = "PUT"
)

func httpPut(addr string, text []byte) (*http.Response, error) {
	return httpMethod(http_put, addr, text)
}

func httpMethod(method, addr string, text []byte) (*http.Response, error) {
	log.Debug("calling server", zap.String("method", method), zap.String("endpoint", addr))
	buf := bytes.NewBuffer(text)
	client := &http.Client{}
	req, err := http.NewRequest(method, addr, buf)
	if err != nil {
		log.Warn("http error", zap.Error(err), zap.String("host", addr))
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		log.Warn("http error", zap.Error(err), zap.String("host", addr))
		return nil, err
	}

	return resp, nil
}

func getJSON(formulatedAddress string, into any) error {
	resp, err := http.Get(formulatedAddress)
	if err != nil {
		log.Warn("http error", zap.Error(err))
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("bad request made, erroring")
	case http.StatusOK:
	default:
		return fmt.Errorf("bad error code: %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(into); err != nil {
		log.Warn("decoding error", zap.Error(err), zap.String("address", formulatedAddress))
		return err
	}
	return nil
}

// GetCompletions asks the server at addr for words starting with prefix.
// limit <= 0 asks for all of them.
func GetCompletions(prefix string, limit int, addr string) (*Completion, error) {
	q := url.Values{}
	q.Set("prefix", prefix)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	formulatedAddress := fmt.Sprintf("%v/api/complete?%s", addr, q.Encode())

	c := &Completion{}
	if err := getJSON(formulatedAddress, c); err != nil {
		return nil, err
	}
	return c, nil
}

func GetWords(addr string) (*WordList, error) {
	formulatedAddress := fmt.Sprintf("%v/api/words", addr)
	w := &WordList{}
	if err := getJSON(formulatedAddress, w); err != nil {
		return nil, err
	}
	return w, nil
}

func GetStatistics(addr string) (*Statistics, error) {
	formulatedAddress := fmt.Sprintf("%v/api/statistics", addr)
	s := &Statistics{}
	if err := getJSON(formulatedAddress, s); err != nil {
		return nil, err
	}
	return s, nil
}

// PutWords replaces the server's word list and has it rebuild its index.
func PutWords(data *WordList, addr string) error {
	text, err := json.Marshal(data)
	if err != nil {
		return err
	}
	formulatedAddress := fmt.Sprintf("%v/api/words", addr)

	resp, err := httpPut(formulatedAddress, text)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("bad request")
	case http.StatusNotAcceptable:
		return fmt.Errorf("word list rejected")
	case http.StatusInternalServerError:
		return fmt.Errorf("something went sideways")
	case http.StatusOK:
		return nil
	}
	return fmt.Errorf("bad error code: %d", resp.StatusCode)
}
