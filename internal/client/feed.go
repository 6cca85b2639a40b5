package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"cnctools/catalog/internal/config"
	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/mirror"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

// DefaultMaxPages caps paging when the config leaves max_pages unset.
const DefaultMaxPages = 50

// ErrCircuitOpen is returned while the feed is cooling down after a 429.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type FeedClient interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	Close() error
}

type feedClient struct {
	rl         ratelimit.Limiter
	config     config.FeedConfig
	httpClient *resty.Client
	parser     *feedParser
	mirrors    mirror.Supplier

	// Circuit breaker for rate limited feeds
	circuitBreakerMutex sync.RWMutex
	quotaExceededUntil  time.Time
	circuitBreakerDelay time.Duration
}

func NewFeedClient(cfg config.FeedConfig, mirrors mirror.Supplier) FeedClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", "cnctools-catalog/1.0").
		SetHeader("Accept", "application/json,text/html;q=0.9,*/*;q=0.8")

	if cfg.MaxPages < 1 {
		cfg.MaxPages = DefaultMaxPages
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &feedClient{
		rl:                  rl,
		config:              cfg,
		httpClient:          client,
		parser:              newFeedParser(cfg.Format, cfg.ScriptSelector),
		mirrors:             mirrors,
		circuitBreakerDelay: time.Duration(cfg.CircuitBreakerMinutes) * time.Minute,
	}
}

// FetchProducts downloads every feed page and returns the products in page order.
func (c *feedClient) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}

	last := first.TotalPages
	if last > c.config.MaxPages {
		log.Warnf("⚠️ Feed reports %d pages, fetching only the first %d", last, c.config.MaxPages)
		last = c.config.MaxPages
	}

	if last <= 1 {
		return first.Products, nil
	}

	rest := make([][]domain.Product, last-1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.config.MaxWorkers))

	for pageNum := 2; pageNum <= last; pageNum++ {
		g.Go(func() error {
			page, err := c.fetchPage(gctx, pageNum)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", pageNum, err)
			}
			rest[pageNum-2] = page.Products
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	products := first.Products
	for _, page := range rest {
		products = append(products, page...)
	}

	log.Debugf("Fetched %d feed pages with %d products", last, len(products))
	return products, nil
}

func (c *feedClient) Close() error {
	return c.httpClient.Close()
}

func (c *feedClient) fetchPage(ctx context.Context, pageNumber int) (*feedPage, error) {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Request blocked by circuit breaker. Remaining time: %v", remaining.Round(time.Second))
		return nil, fmt.Errorf("%w: requests disabled for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	c.rl.Take()
	body, err := c.fetchBody(ctx, c.config.BaseURL, pageNumber)

	if err != nil && !errors.Is(err, ErrCircuitOpen) && ctx.Err() == nil && c.mirrors != nil {
		if base := c.mirrors.Get(); base != "" {
			log.Warnf("🔄 Page %d failed (%v), retrying against mirror %s", pageNumber, err, base)
			c.rl.Take()
			body, err = c.fetchBody(ctx, base, pageNumber)
		}
	}

	if err != nil {
		return nil, err
	}

	page, err := c.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %d: %w", pageNumber, err)
	}

	return page, nil
}

func (c *feedClient) fetchBody(ctx context.Context, base string, pageNumber int) ([]byte, error) {
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(c.config.Path, "/")

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(pageNumber)).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		log.Warnf("🚫 Rate limit exceeded for URL: %s", url)
		c.triggerCircuitBreaker()
		return nil, fmt.Errorf("%w: feed answered 429", ErrCircuitOpen)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status())
	}

	return []byte(resp.String()), nil
}

func (c *feedClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.quotaExceededUntil)
	wasTriggered := !c.quotaExceededUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		if !c.quotaExceededUntil.IsZero() && now.After(c.quotaExceededUntil) {
			c.quotaExceededUntil = time.Time{}
			log.Infof("✅ Circuit breaker automatically re-enabled - feed requests are allowed again")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *feedClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.quotaExceededUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! Feed requests disabled until %v (%v)",
		c.quotaExceededUntil.Format("15:04:05"), c.circuitBreakerDelay)
}

func (c *feedClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.quotaExceededUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}
