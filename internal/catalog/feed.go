package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/safar/storefront/internal/models"
)

const (
	PageSize = 20
	// PrefetchMarginPx is how far below the viewport the end-of-list
	// sentinel starts loading the next page.
	PrefetchMarginPx = 200
)

// PageFunc fetches one 1-based page of products.
type PageFunc func(ctx context.Context, page int) ([]models.Product, error)

// Feed accumulates product pages for an infinitely scrolling grid.
// HasMore is approximate: a full last page costs one extra, empty fetch.
type Feed struct {
	mu      sync.Mutex
	fetch   PageFunc
	items   []models.Product
	page    int
	hasMore bool
	loading bool
}

type FeedState struct {
	Items            []models.Product `json:"items"`
	Page             int              `json:"page"`
	HasMore          bool             `json:"hasMore"`
	PrefetchMarginPx int              `json:"prefetchMarginPx"`
}

// NewFeed starts from an already fetched first page.
func NewFeed(first []models.Product, fetch PageFunc) *Feed {
	return &Feed{
		fetch:   fetch,
		items:   append([]models.Product(nil), first...),
		page:    1,
		hasMore: len(first) == PageSize,
	}
}

// OnSentinelVisible loads the next page unless a load is in flight or the
// end was reached. It reports whether a page was appended. A failed fetch
// leaves the feed unchanged.
func (f *Feed) OnSentinelVisible(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return false, nil
	}
	f.loading = true
	next := f.page + 1
	f.mu.Unlock()

	items, err := f.fetch(ctx, next)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		return false, fmt.Errorf("load page %d: %w", next, err)
	}
	f.items = append(f.items, items...)
	f.page = next
	f.hasMore = len(items) == PageSize
	return true, nil
}

func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FeedState{
		Items:            append([]models.Product{}, f.items...),
		Page:             f.page,
		HasMore:          f.hasMore,
		PrefetchMarginPx: PrefetchMarginPx,
	}
}
