package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestCollectionMissingKeyIsEmpty(t *testing.T) {
	c := NewCollection[item](NewMemoryStore(), NewLocks(), "items")

	if got := c.All(); len(got) != 0 || got == nil {
		t.Errorf("All() = %#v, want empty non-nil slice", got)
	}
	if _, err := c.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestCollectionDecodeFailureFallsBack(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Put("items", []byte(`{"oops": true}`))
	c := NewCollection[item](store, NewLocks(), "items")

	if got := c.All(); len(got) != 0 {
		t.Errorf("All() = %v, want empty", got)
	}
	if _, err := c.Load(); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want decode error", err)
	}

	// Update starts from the empty fallback and repairs the document.
	if _, err := c.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "a"}), nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := c.All(); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("All() after repair = %v", got)
	}
}

func TestCollectionUpdateAbortsOnError(t *testing.T) {
	c := NewCollection[item](NewMemoryStore(), NewLocks(), "items")
	_ = c.Save([]item{{ID: "a"}})

	boom := errors.New("boom")
	if _, err := c.Update(func(items []item) ([]item, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want boom", err)
	}
	if got := c.All(); len(got) != 1 {
		t.Errorf("collection changed after failed update: %v", got)
	}
}

func TestCollectionUpdatesDoNotInterleave(t *testing.T) {
	store := NewMemoryStore()
	locks := NewLocks()
	c := NewCollection[item](store, locks, "items")
	_ = c.Save([]item{{ID: "counter"}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A second handle on the same key shares the lock.
			h := NewCollection[item](store, locks, "items")
			_, _ = h.Update(func(items []item) ([]item, error) {
				items[0].Count++
				return items, nil
			})
		}()
	}
	wg.Wait()

	if got := c.All()[0].Count; got != 50 {
		t.Errorf("Count = %d, want 50", got)
	}
}

func TestDocumentGetPut(t *testing.T) {
	d := NewDocument[item](NewMemoryStore(), NewLocks(), "one")
	if _, ok := d.Get(); ok {
		t.Error("expected missing document")
	}
	if err := d.Put(item{ID: "x", Count: 2}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok := d.Get()
	if !ok || got.Count != 2 {
		t.Errorf("Get() = %v, %v", got, ok)
	}
}

func TestVerify(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Put("good", []byte(`[]`))
	_ = store.Put("object", []byte(`{}`))
	_ = store.Put("garbage", []byte(`nope`))

	problems, err := Verify(context.Background(), store, []string{"good", "object", "garbage", "missing"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("Verify() = %v, want 2 problems", problems)
	}
	if problems[0].Key != "garbage" || problems[1].Key != "object" {
		t.Errorf("unexpected problem order: %v", problems)
	}
}

func TestVerifyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	keys := make([]string, 10)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	if _, err := Verify(ctx, NewMemoryStore(), keys); !errors.Is(err, context.Canceled) {
		t.Errorf("Verify() error = %v, want context.Canceled", err)
	}
}

type failingStore struct {
	*MemoryStore
}

func (failingStore) Put(string, []byte) error {
	return errors.New("disk full")
}

func TestCollectionSaveFailureIsErrWrite(t *testing.T) {
	c := NewCollection[item](failingStore{NewMemoryStore()}, NewLocks(), "items")
	if err := c.Save([]item{{ID: "a"}}); !errors.Is(err, ErrWrite) {
		t.Errorf("Save() error = %v, want ErrWrite", err)
	}
	if _, err := c.Update(func(items []item) ([]item, error) { return items, nil }); !errors.Is(err, ErrWrite) {
		t.Errorf("Update() error = %v, want ErrWrite", err)
	}
}

// flakyReadStore fails every Get while failReads is set.
type flakyReadStore struct {
	*MemoryStore
	failReads bool
}

func (s *flakyReadStore) Get(key string) ([]byte, error) {
	if s.failReads {
		return nil, errors.New("connection reset")
	}
	return s.MemoryStore.Get(key)
}

func TestCollectionUpdateKeepsItemsOnReadFailure(t *testing.T) {
	store := &flakyReadStore{MemoryStore: NewMemoryStore()}
	c := NewCollection[item](store, NewLocks(), "items")
	if err := c.Save([]item{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store.failReads = true
	called := false
	_, err := c.Update(func(items []item) ([]item, error) {
		called = true
		return append(items, item{ID: "c"}), nil
	})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Update() error = %v, want ErrWrite", err)
	}
	if called {
		t.Error("Update() ran fn over an unreadable collection")
	}

	store.failReads = false
	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("items after failed update = %v, want [a b]", got)
	}
}
