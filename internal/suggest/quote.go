// Package suggest provides motivational quotes and activity suggestions.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/logging"

	"github.com/hashicorp/go-hclog"
	"github.com/sony/gobreaker/v2"
)

// DefaultQuoteURL serves a JSON array of {text, author} objects
const DefaultQuoteURL = "https://type.fit/api/quotes"

// DefaultTimeout bounds a single quote fetch
const DefaultTimeout = 5 * time.Second

const maxQuoteBody = 4 << 20

// Quote is a motivational quote
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// String formats the quote for display
func (q Quote) String() string {
	return fmt.Sprintf("%q - %s", q.Text, q.Author)
}

// FallbackQuote is shown whenever the remote quote cannot be fetched
var FallbackQuote = Quote{
	Text:   "The only way to do great work is to love what you do.",
	Author: "Steve Jobs",
}

// QuoteClient fetches quotes over HTTP behind a circuit breaker
type QuoteClient struct {
	url     string
	http    *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]Quote]
	logger  hclog.Logger

	randMutex sync.Mutex
	rand      *rand.Rand
}

// QuoteOption configures a QuoteClient
type QuoteOption func(*QuoteClient)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) QuoteOption {
	return func(q *QuoteClient) {
		q.http = c
	}
}

// WithTimeout bounds each fetch
func WithTimeout(d time.Duration) QuoteOption {
	return func(q *QuoteClient) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger hclog.Logger) QuoteOption {
	return func(q *QuoteClient) {
		q.logger = logging.OrDiscard(logger)
	}
}

// WithRand sets the random source used to pick a quote
func WithRand(r *rand.Rand) QuoteOption {
	return func(q *QuoteClient) {
		q.rand = r
	}
}

// NewQuoteClient creates a client for url. An empty url uses DefaultQuoteURL.
func NewQuoteClient(url string, opts ...QuoteOption) *QuoteClient {
	if url == "" {
		url = DefaultQuoteURL
	}

	q := &QuoteClient{
		url:     url,
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  logging.Discard(),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(q)
	}

	q.breaker = gobreaker.NewCircuitBreaker[[]Quote](gobreaker.Settings{
		Name:        "quotes",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			q.logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return q
}

// Quote returns a random remote quote, or FallbackQuote on any failure
func (q *QuoteClient) Quote(ctx context.Context) Quote {
	quote, err := q.Fetch(ctx)
	if err != nil {
		q.logger.Debug("using fallback quote", "error", err)
		return FallbackQuote
	}
	return quote
}

// Fetch returns a random remote quote or the reason it could not
func (q *QuoteClient) Fetch(ctx context.Context) (Quote, error) {
	quotes, err := q.breaker.Execute(func() ([]Quote, error) {
		return q.fetchAll(ctx)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return Quote{}, apperrors.NewUnavailableError("quote service", err)
		}
		return Quote{}, err
	}

	q.randMutex.Lock()
	quote := quotes[q.rand.Intn(len(quotes))]
	q.randMutex.Unlock()

	quote.Text = strings.TrimSpace(quote.Text)
	quote.Author = strings.TrimSpace(quote.Author)
	if quote.Author == "" {
		quote.Author = "Unknown"
	}
	return quote, nil
}

// State reports the circuit breaker state
func (q *QuoteClient) State() gobreaker.State {
	return q.breaker.State()
}

func (q *QuoteClient) fetchAll(ctx context.Context) ([]Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.url, nil)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("quote_url", q.url, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError("fetch quote", q.timeout)
		}
		return nil, apperrors.NewUnavailableError("quote service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUnavailableError("quote service", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var quotes []Quote
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxQuoteBody)).Decode(&quotes); err != nil {
		return nil, apperrors.NewUnavailableError("quote service", fmt.Errorf("decode quotes: %w", err))
	}

	usable := quotes[:0]
	for _, quote := range quotes {
		if strings.TrimSpace(quote.Text) != "" {
			usable = append(usable, quote)
		}
	}
	if len(usable) == 0 {
		return nil, apperrors.NewUnavailableError("quote service", fmt.Errorf("no quotes returned"))
	}

	return usable, nil
}
