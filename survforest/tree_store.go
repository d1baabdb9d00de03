package survforest

import (
	"context"
	"sync"
)

/*
TreeStore is an interface to manage a store where the trees of a
fitted forest are persisted, keyed by their index in the ensemble.

All its methods take a context that may allow cancelling the
operation (thus forcing the return of an error) if the implementation
allows it.
*/
type TreeStore interface {
	// Store persists the tree at the given ensemble index,
	// replacing any tree already stored there. It returns an error
	// if the tree cannot be stored.
	Store(ctx context.Context, index int, t *Tree) error
	// Get returns the tree at the given ensemble index, or nil if
	// no tree is stored there, or an error if the store cannot be
	// queried.
	Get(ctx context.Context, index int) (*Tree, error)
	// Count returns the number of trees in the store or an error
	// if the store cannot be queried.
	Count(ctx context.Context) (int, error)
	// Close closes the store, implementations should free any
	// resources in use as well as ensure any pending changes are
	// applied before returning (unless the context expires).
	Close(ctx context.Context) error
}

type memoryTreeStore struct {
	trees map[int]*Tree
	lock  *sync.RWMutex
}

// NewMemoryTreeStore returns an implementation of TreeStore with the
// process memory space as underlying backend
func NewMemoryTreeStore() TreeStore {
	return &memoryTreeStore{
		trees: make(map[int]*Tree),
		lock:  &sync.RWMutex{},
	}
}

func (mts *memoryTreeStore) Store(ctx context.Context, index int, t *Tree) error {
	return mts.withLock(ctx, func(ctx context.Context) error {
		mts.trees[index] = t
		return nil
	})
}

func (mts *memoryTreeStore) Get(ctx context.Context, index int) (*Tree, error) {
	var t *Tree
	err := mts.withRLock(ctx, func(ctx context.Context) error {
		t = mts.trees[index]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (mts *memoryTreeStore) Count(ctx context.Context) (int, error) {
	var count int
	err := mts.withRLock(ctx, func(ctx context.Context) error {
		count = len(mts.trees)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (mts *memoryTreeStore) Close(ctx context.Context) error {
	return nil
}

func (mts *memoryTreeStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		mts.lock.Lock()
		select {
		case <-ctx.Done():
			mts.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer mts.lock.Unlock()
	}
	return f(ctx)
}

func (mts *memoryTreeStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		mts.lock.RLock()
		select {
		case <-ctx.Done():
			mts.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer mts.lock.RUnlock()
	}
	return f(ctx)
}
