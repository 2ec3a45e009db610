package catalog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tavsec/gin-healthcheck/checks"
)

// Loaded is published to subscribers each time a table replaces the current one.
type Loaded struct {
	Count    int
	LoadedAt time.Time
}

type Subscriber func(Loaded)

// ProductRepository gives read access to the most recently loaded table.
// Readers see either the previous table or the new one, never a mix.
type ProductRepository interface {
	Current() *Table
	Lookup(key string) (Record, bool)
	LastLoaded() *time.Time
	Subscribe(fn Subscriber) (unsubscribe func())
	Replace(table *Table)
	Check() checks.Check
}

type memoryRepository struct {
	table      atomic.Pointer[Table]
	lastLoaded atomic.Pointer[time.Time]

	mu          sync.Mutex
	nextID      int
	subscribers map[int]Subscriber
}

func NewProductRepository() ProductRepository {
	repo := &memoryRepository{
		subscribers: make(map[int]Subscriber),
	}
	repo.table.Store(Empty())
	return repo
}

func (repo *memoryRepository) Current() *Table {
	return repo.table.Load()
}

func (repo *memoryRepository) Lookup(key string) (Record, bool) {
	return repo.Current().Get(key)
}

func (repo *memoryRepository) LastLoaded() *time.Time {
	return repo.lastLoaded.Load()
}

func (repo *memoryRepository) Subscribe(fn Subscriber) func() {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	id := repo.nextID
	repo.nextID++
	repo.subscribers[id] = fn

	return func() {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		delete(repo.subscribers, id)
	}
}

// Replace swaps in table as a whole and notifies every subscriber once.
// A nil table is ignored.
func (repo *memoryRepository) Replace(table *Table) {
	if table == nil {
		return
	}

	now := time.Now().UTC()
	repo.table.Store(table)
	repo.lastLoaded.Store(&now)

	repo.mu.Lock()
	subscribers := make([]Subscriber, 0, len(repo.subscribers))
	for _, fn := range repo.subscribers {
		subscribers = append(subscribers, fn)
	}
	repo.mu.Unlock()

	event := Loaded{Count: table.Len(), LoadedAt: now}
	for _, fn := range subscribers {
		fn(event)
	}
}

func (repo *memoryRepository) Check() checks.Check {
	return &loadedCheck{repo: repo}
}

type loadedCheck struct {
	repo *memoryRepository
}

func (c *loadedCheck) Pass() bool {
	return c.repo.LastLoaded() != nil
}

func (c *loadedCheck) Name() string {
	return "product-sheets"
}
