package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a remote bank fetch.
const DefaultTimeout = 10 * time.Second

// LoadError reports a failure to read or parse the question bank.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads the question bank from a file path or an HTTP(S) URL.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for remote sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout bounds remote fetches. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads, validates, and decodes the bank at source. Every failure is
// returned as *LoadError.
func (l *Loader) Load(ctx context.Context, source string) ([]Question, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		l.log.Error().Err(err).Str("source", source).Msg("read question bank")
		return nil, &LoadError{Source: source, Err: err}
	}

	questions, err := Parse(data)
	if err != nil {
		l.log.Error().Err(err).Str("source", source).Msg("parse question bank")
		return nil, &LoadError{Source: source, Err: err}
	}

	if n := countUnanswerable(questions); n > 0 {
		l.log.Warn().Int("count", n).Strs("choices", Choices).
			Msg("questions whose answer is not a rendered choice")
	}
	l.log.Info().Int("questions", len(questions)).Str("source", source).Msg("question bank loaded")
	return questions, nil
}

// Parse validates data against the bank schema and decodes it.
func Parse(data []byte) ([]Question, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	seen := make(map[ID]int, len(questions))
	for i, q := range questions {
		if prev, dup := seen[q.Num]; dup {
			return nil, fmt.Errorf("duplicate num %q at index %d (first at %d)", q.Num, i, prev)
		}
		seen[q.Num] = i
	}
	return questions, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if isRemote(source) {
		return l.fetch(ctx, source)
	}
	return os.ReadFile(source)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func countUnanswerable(questions []Question) int {
	n := 0
	for _, q := range questions {
		if !IsChoice(q.Answer) {
			n++
		}
	}
	return n
}
