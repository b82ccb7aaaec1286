package fetch

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

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// userAgents is rotated per request. The stats upstreams fingerprint clients,
// so everything here looks like a desktop browser.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/17.1 Safari/605.1.15",
}

const (
	maxAttempts    = 3
	jitterMinSleep = 200 * time.Millisecond
	jitterMaxSleep = 600 * time.Millisecond
)

// Options configures the shared upstream client.
type Options struct {
	Timeout       time.Duration // per-request socket timeout
	RatePerSecond float64       // per-upstream request rate
	Browser       *BrowserFetcher
	Logger        *logrus.Logger
}

// Client is the shared HTTP client for every upstream. Each upstream key gets
// its own rate limiter and circuit breaker; an open breaker surfaces as an
// error the caller maps to its fallback value.
type Client struct {
	http    *http.Client
	rate    float64
	browser *BrowserFetcher
	log     *logrus.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient creates the shared upstream client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 2.0
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		rate:     opts.RatePerSecond,
		browser:  opts.Browser,
		log:      opts.Logger,
		limiters: make(map[string]*rate.Limiter),
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (c *Client) limiter(upstream string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lim, ok := c.limiters[upstream]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(c.rate), 1)
	c.limiters[upstream] = lim
	return lim
}

func (c *Client) breaker(upstream string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok := c.breakers[upstream]; ok {
		return cb
	}
	log := c.log
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    upstream,
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"component": "fetch",
				"upstream":  name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	})
	c.breakers[upstream] = cb
	return cb
}

// Get fetches url from the named upstream and returns the raw body.
func (c *Client) Get(ctx context.Context, upstream, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter(upstream).Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker(upstream).Execute(func() (interface{}, error) {
		return c.getWithRetry(ctx, upstream, url, headers)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) getWithRetry(ctx context.Context, upstream, url string, headers map[string]string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := c.getOnce(ctx, url, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.log.WithFields(logrus.Fields{
			"component": "fetch",
			"upstream":  upstream,
			"attempt":   attempt,
			"error":     err.Error(),
		}).Debug("Upstream request failed")

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitterSleep()):
			}
		}
	}

	// A blocked upstream sometimes serves a browser just fine
	if c.browser != nil {
		html, berr := c.browser.Fetch(ctx, url)
		if berr == nil {
			return []byte(html), nil
		}
		c.log.WithFields(logrus.Fields{
			"component": "fetch",
			"upstream":  upstream,
			"error":     berr.Error(),
		}).Debug("Browser fallback failed")
	}

	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// GetJSON fetches url and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, upstream, url string, headers map[string]string, out interface{}) error {
	body, err := c.Get(ctx, upstream, url, headers)
	if err != nil {
		return err
	}
	if len(body) > 0 && body[0] == '<' {
		return fmt.Errorf("upstream returned HTML instead of JSON for %s", url)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// GetDocument fetches url and parses the body as an HTML document.
func (c *Client) GetDocument(ctx context.Context, upstream, url string, headers map[string]string) (*goquery.Document, error) {
	body, err := c.Get(ctx, upstream, url, headers)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing document from %s: %w", url, err)
	}
	return doc, nil
}

func jitterSleep() time.Duration {
	spread := jitterMaxSleep - jitterMinSleep
	return jitterMinSleep + time.Duration(rand.Int63n(int64(spread)))
}
