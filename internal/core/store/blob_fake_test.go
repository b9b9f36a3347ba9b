package store

import (
	"context"
	"sync"
)

// fakeBlobs is an in-memory BlobStore with per-key write failure injection.
type fakeBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	setErr  map[string]error
	delErr  error
	setHits int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{
		data:   make(map[string][]byte),
		setErr: make(map[string]error),
	}
}

func (f *fakeBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (f *fakeBlobs) Set(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setHits++
	if err := f.setErr[key]; err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeBlobs) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

func (f *fakeBlobs) failSetOn(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr[key] = err
}

func (f *fakeBlobs) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setHits
}
