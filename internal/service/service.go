package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"cnctools/catalog/internal/catalog"
	"cnctools/catalog/internal/client"
	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/export"
	"cnctools/catalog/internal/state"
	"cnctools/catalog/internal/taxonomy"
	"cnctools/catalog/internal/view"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	client          client.FeedClient
	stateManager    state.StateManager
	taxonomy        *taxonomy.Taxonomy
	defaultPageSize int

	mu          sync.RWMutex
	products    []domain.Product
	refreshedAt time.Time
}

func NewService(
	client client.FeedClient,
	stateManager state.StateManager,
	tax *taxonomy.Taxonomy,
	defaultPageSize int,
) *Service {
	if defaultPageSize < 1 {
		defaultPageSize = domain.DefaultItemsPerPage
	}
	return &Service{
		client:          client,
		stateManager:    stateManager,
		taxonomy:        tax,
		defaultPageSize: defaultPageSize,
	}
}

// Products returns the current snapshot; nil before the first refresh.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func (s *Service) Taxonomy() *taxonomy.Taxonomy {
	return s.taxonomy
}

// Refresh fetches the feed and swaps the snapshot. On failure the previous
// snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	started := time.Now()

	products, err := s.client.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh products: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	counts := make(map[domain.Tab]int, len(domain.Tabs))
	unclassified := 0
	for _, p := range products {
		if !catalog.IsAvailable(p) {
			continue
		}
		if tab, ok := s.taxonomy.TabOf(p); ok {
			counts[tab]++
		} else {
			unclassified++
		}
	}

	log.Infof("✅ Loaded %d products in %v", len(products), time.Since(started).Round(time.Millisecond))
	for _, tab := range domain.Tabs {
		log.Infof("📦 %s: %d available", tab.GetTabName(), counts[tab])
	}
	if unclassified > 0 {
		log.Debugf("%d available products match no tab", unclassified)
	}

	return nil
}

// RunRefresher refreshes immediately and then every interval until ctx is done.
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) error {
	if err := s.Refresh(ctx); err != nil {
		log.Errorf("❌ Initial refresh failed: %v", err)
	}

	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infof("🛑 Refresher stopping")
			return nil
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Errorf("❌ Refresh failed, keeping previous snapshot: %v", err)
			}
		}
	}
}

// SessionState returns the stored state for a session, or a fresh default.
func (s *Service) SessionState(ctx context.Context, sessionID string) domain.FilterState {
	fresh := domain.DefaultFilterState().WithItemsPerPage(s.defaultPageSize)
	if sessionID == "" {
		return fresh
	}

	st, ok, err := s.stateManager.Get(ctx, sessionID)
	if err != nil {
		log.Warnf("⚠️ Failed to load session state: %v", err)
		return fresh
	}
	if !ok {
		return fresh
	}
	return st
}

// Query runs the pipeline for st and stores the resulting state for the session.
func (s *Service) Query(ctx context.Context, sessionID string, st domain.FilterState) (domain.Page, domain.FilterState) {
	page, next := catalog.Run(s.Products(), s.taxonomy, st)

	if sessionID != "" {
		if err := s.stateManager.Save(ctx, sessionID, next); err != nil {
			log.Warnf("⚠️ Failed to save session state: %v", err)
		}
	}

	return page, next
}

// Export writes every row matching st, sorted but not paginated.
func (s *Service) Export(ctx context.Context, st domain.FilterState, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filtered := catalog.SortByDiameter(catalog.FilterProducts(s.Products(), s.taxonomy, st.Normalize()))

	rows := make([]view.Row, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, view.NewRow(p))
	}

	return export.WriteXLSX(w, rows)
}
