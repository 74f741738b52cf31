package wordsource

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrEmptyWordList = errors.New("word list is empty")

// Source returns one candidate word per call. Implementations do not retry;
// length filtering and retries belong to the caller.
type Source interface {
	Word(ctx context.Context) (string, error)
}

// HTTPSource fetches words from an endpoint that answers with a JSON array of
// strings, such as random-word-api.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Word(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build word request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch word: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("word API returned status %d", resp.StatusCode)
	}

	var words []string
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return "", fmt.Errorf("failed to decode word response: %w", err)
	}
	if len(words) == 0 {
		return "", fmt.Errorf("word API returned no words")
	}

	return strings.ToLower(strings.TrimSpace(words[0])), nil
}

// FileSource picks words uniformly from a list loaded up front.
type FileSource struct {
	words []string
	rand  *rand.Rand
}

// NewFileSource reads one word per line from path. Blank lines and lines
// starting with '#' are skipped.
func NewFileSource(path string, rng *rand.Rand) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}

	return NewListSource(words, rng)
}

func NewListSource(words []string, rng *rand.Rand) (*FileSource, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FileSource{words: words, rand: rng}, nil
}

func (s *FileSource) Word(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.words[s.rand.Intn(len(s.words))], nil
}

func (s *FileSource) Len() int {
	return len(s.words)
}

// CountWithin returns how many loaded words are between min and max
// characters long.
func (s *FileSource) CountWithin(min, max int) int {
	n := 0
	for _, word := range s.words {
		if l := utf8.RuneCountInString(word); l >= min && l <= max {
			n++
		}
	}
	return n
}
