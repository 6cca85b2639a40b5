package mirror

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

// Supplier hands out feed mirrors with round-robin selection
type Supplier interface {
	Get() string
}

type supplier struct {
	mirrors []string
	current int
	mutex   sync.Mutex
}

// NewStaticSupplier rotates over mirrors without validating them
func NewStaticSupplier(mirrors ...string) Supplier {
	return &supplier{mirrors: append([]string(nil), mirrors...)}
}

// NewSupplier validates mirrors in parallel and keeps the ones that answer
// the feed path without an HTTP error. Config order is preserved.
func NewSupplier(ctx context.Context, mirrors []string, feedPath string) Supplier {
	if len(mirrors) == 0 {
		return &supplier{}
	}

	log.Infof("🔄 Testing %d feed mirrors in parallel...", len(mirrors))

	healthy := make([]bool, len(mirrors))

	g := new(errgroup.Group)
	g.SetLimit(16)

	for i, base := range mirrors {
		g.Go(func() error {
			if isMirrorValid(ctx, feedURL(base, feedPath)) {
				healthy[i] = true
				log.Infof("✅ Mirror %s is working", base)
			} else {
				log.Infof("❌ Mirror %s is not working, skipping", base)
			}
			return nil
		})
	}
	_ = g.Wait()

	valid := make([]string, 0, len(mirrors))
	for i, ok := range healthy {
		if ok {
			valid = append(valid, mirrors[i])
		}
	}

	log.Infof("✅ Mirror supplier initialized with %d working mirrors out of %d tested", len(valid), len(mirrors))

	return &supplier{mirrors: valid}
}

// Get returns the next mirror base URL, or "" when none are available
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.mirrors) == 0 {
		return ""
	}

	mirror := s.mirrors[s.current]
	s.current = (s.current + 1) % len(s.mirrors)

	return mirror
}

func feedURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func isMirrorValid(ctx context.Context, url string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		log.Debugf("Mirror test failed for %s: %v", url, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Mirror test failed for %s with status: %s", url, resp.Status())
		return false
	}

	return true
}
