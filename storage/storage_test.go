package storage

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func newTestStore(t *testing.T) *Store {
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	store := newTestStore(t)

	value, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestSetGetDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("key", []byte("value")))
	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	require.NoError(t, store.Delete("key"))
	value, err = store.Get("key")
	require.NoError(t, err)
	assert.Nil(t, value)

	// 删除不存在的键静默成功
	require.NoError(t, store.Delete("key"))
}

func TestCollectionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	items := []record{{ID: "a", Value: 1}, {ID: "b", Value: 2}}
	require.NoError(t, SaveCollection(store, "records", items))

	loaded, err := LoadCollection[record](store, "records")
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestLoadMissingCollectionReturnsEmptySlice(t *testing.T) {
	store := newTestStore(t)

	loaded, err := LoadCollection[record](store, "missing")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestUpdateCollectionErrorSkipsWrite(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, SaveCollection(store, "records", []record{{ID: "a", Value: 1}}))

	boom := errors.New("boom")
	err := UpdateCollection(store, "records", func(items []record) ([]record, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := LoadCollection[record](store, "records")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].ID)
}

func TestUpdateCollectionConcurrentAppends(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = UpdateCollection(store, "records", func(items []record) ([]record, error) {
				return append(items, record{Value: n}), nil
			})
		}(i)
	}
	wg.Wait()

	loaded, err := LoadCollection[record](store, "records")
	require.NoError(t, err)
	assert.Len(t, loaded, 20)
}
