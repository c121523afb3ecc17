// Package trending keeps a periodically refreshed snapshot of the trending
// shelf so the home screen is served without an OpenLibrary round trip per
// request.
package trending

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mybooks/server/internal/entities"
)

// Lister fetches the current trending listing.
type Lister interface {
	Trending(ctx context.Context) ([]entities.Book, error)
}

// Cache holds the latest trending snapshot, refreshed on a cron schedule.
// When cold it falls through to a live fetch.
type Cache struct {
	client Lister

	mu        sync.RWMutex
	books     []entities.Book
	fetchedAt time.Time

	cron       *cron.Cron
	entryID    cron.EntryID
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCache creates a trending cache over the given lister.
func NewCache(client Lister) *Cache {
	return &Cache{
		client: client,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Get returns the cached snapshot, or fetches one live when the cache is
// cold. A live fetch failure surfaces to the caller; a stale snapshot is
// preferred over an error once one exists.
func (c *Cache) Get(ctx context.Context) ([]entities.Book, error) {
	c.mu.RLock()
	if c.books != nil {
		out := make([]entities.Book, len(c.books))
		copy(out, c.books)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	return c.refresh(ctx)
}

// Refresh fetches the listing and replaces the snapshot.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err := c.refresh(ctx)
	return err
}

func (c *Cache) refresh(ctx context.Context) ([]entities.Book, error) {
	books, err := c.client.Trending(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.books = books
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	out := make([]entities.Book, len(books))
	copy(out, books)
	return out, nil
}

// FetchedAt returns when the current snapshot was taken, zero when cold.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Start schedules periodic refreshes and runs an initial refresh in the
// background. Calling Start on a running cache is a no-op.
func (c *Cache) Start(ctx context.Context, schedule string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return nil
	}

	entryID, err := c.cron.AddFunc(schedule, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		books, err := c.refresh(refreshCtx)
		if err != nil {
			log.Printf("Trending refresh failed: %v", err)
			return
		}
		log.Printf("Trending shelf refreshed (%d books)", len(books))
	})
	if err != nil {
		return fmt.Errorf("invalid trending schedule '%s': %w", schedule, err)
	}
	c.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, c.cancelFunc = context.WithCancel(ctx)

	c.cron.Start()
	c.isRunning = true
	log.Printf("Trending refresh scheduler: started with schedule '%s'", schedule)

	go func() {
		warmCtx, cancel := context.WithTimeout(cancelCtx, 30*time.Second)
		defer cancel()
		if err := c.Refresh(warmCtx); err != nil {
			log.Printf("Initial trending fetch failed: %v", err)
		}
	}()

	go func() {
		<-cancelCtx.Done()
		c.Stop()
	}()

	return nil
}

// Stop halts the refresh schedule. The snapshot stays available.
func (c *Cache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		return
	}
	c.cron.Remove(c.entryID)
	c.cron.Stop()
	if c.cancelFunc != nil {
		c.cancelFunc()
		c.cancelFunc = nil
	}
	c.isRunning = false
}
