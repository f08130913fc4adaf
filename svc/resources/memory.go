package resources

import (
	"context"
	"sync"

	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// Memory is an in-process resource store for tests and local runs.
type Memory struct {
	mu    sync.RWMutex
	items map[string]rbac.Resource
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]rbac.Resource)}
}

var _ rbac.ResourceLookup = (*Memory)(nil)

// Put stores or replaces a resource.
func (m *Memory) Put(id string, res rbac.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = res
}

func (m *Memory) LookupResource(_ context.Context, id string) (rbac.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.items[id]
	if !ok {
		return rbac.Resource{}, rbac.ErrResourceNotFound
	}
	return res, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return rbac.ErrResourceNotFound
	}
	delete(m.items, id)
	return nil
}
