package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryStartsEmpty(t *testing.T) {
	repo := NewProductRepository()

	require.NotNil(t, repo.Current())
	assert.Equal(t, 0, repo.Current().Len())
	assert.Nil(t, repo.LastLoaded())
	assert.False(t, repo.Check().Pass())

	_, ok := repo.Lookup("Apple")
	assert.False(t, ok)
}

func TestRepositoryReplace(t *testing.T) {
	repo := NewProductRepository()

	var events []Loaded
	unsubscribe := repo.Subscribe(func(l Loaded) {
		events = append(events, l)
	})

	table, err := Build([][]string{{"name", "price"}, {"Apple", "1.50"}, {"Pear", "2.00"}})
	require.NoError(t, err)
	repo.Replace(table)

	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].Count)
	assert.Same(t, table, repo.Current())
	require.NotNil(t, repo.LastLoaded())
	assert.True(t, repo.Check().Pass())
	assert.Equal(t, "product-sheets", repo.Check().Name())

	record, ok := repo.Lookup("Pear")
	require.True(t, ok)
	assert.Equal(t, "2.00", record.Get("price"))

	unsubscribe()
	repo.Replace(Empty())
	assert.Len(t, events, 1)
}

func TestRepositoryIgnoresNilTable(t *testing.T) {
	repo := NewProductRepository()
	notified := false
	repo.Subscribe(func(Loaded) { notified = true })

	repo.Replace(nil)

	assert.False(t, notified)
	assert.NotNil(t, repo.Current())
	assert.Nil(t, repo.LastLoaded())
}

func TestRepositoryConcurrentReadersSeeWholeTables(t *testing.T) {
	repo := NewProductRepository()
	small, _ := Build([][]string{{"name"}, {"a"}})
	large, _ := Build([][]string{{"name"}, {"a"}, {"b"}, {"c"}})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				n := repo.Current().Len()
				assert.Contains(t, []int{0, 1, 3}, n)
			}
		}()
	}

	for j := 0; j < 100; j++ {
		if j%2 == 0 {
			repo.Replace(small)
		} else {
			repo.Replace(large)
		}
	}
	wg.Wait()
}
