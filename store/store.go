/*
Package store manages persistence of grown trees under string model
IDs, so a tree grown once can be reloaded later for prediction.

It provides an in-memory implementation of the ModelStore interface;
the redisstore sub-package provides one backed by a redis database.
*/
package store

import (
	"bytes"
	"context"
	"sync"

	"github.com/Textualization/ML/tree"
	treejson "github.com/Textualization/ML/tree/json"
	"github.com/google/uuid"
)

/*
ModelStore is an interface to manage a store where grown trees can be
saved, retrieved, listed and deleted under string model IDs.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type ModelStore interface {
	// Save stores the given grown tree under the given ID,
	// overwriting any previous tree with that ID. An empty ID asks
	// the store to generate one. It returns the ID the tree was
	// stored under or an error if the tree cannot be stored.
	Save(ctx context.Context, id string, t *tree.Tree) (string, error)
	// Load returns the tree stored under the given ID, nil if
	// there is none, or an error if the store cannot be queried.
	Load(ctx context.Context, id string) (*tree.Tree, error)
	// Delete removes the tree stored under the given ID, if any.
	Delete(ctx context.Context, id string) error
	// List returns the IDs of the stored trees.
	List(ctx context.Context) ([]string, error)
	// Close closes the store. Implementations should free any
	// resources in use and ensure pending changes are applied
	// before returning, unless the context expires first.
	Close(ctx context.Context) error
}

type memoryModelStore struct {
	models map[string][]byte
	lock   *sync.RWMutex
}

/*
NewMemoryModelStore returns an implementation of ModelStore with the
process memory space as underlying backend.
*/
func NewMemoryModelStore() ModelStore {
	return &memoryModelStore{
		models: make(map[string][]byte),
		lock:   &sync.RWMutex{},
	}
}

func (ms *memoryModelStore) Save(ctx context.Context, id string, t *tree.Tree) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	var buf bytes.Buffer
	if err := treejson.WriteTree(t, &buf); err != nil {
		return "", err
	}
	err := ms.withLock(ctx, func(ctx context.Context) error {
		ms.models[id] = buf.Bytes()
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (ms *memoryModelStore) Load(ctx context.Context, id string) (*tree.Tree, error) {
	var data []byte
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		data = ms.models[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return treejson.ReadTree(bytes.NewReader(data))
}

func (ms *memoryModelStore) Delete(ctx context.Context, id string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.models, id)
		return nil
	})
}

func (ms *memoryModelStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		for id := range ms.models {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (ms *memoryModelStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryModelStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryModelStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
