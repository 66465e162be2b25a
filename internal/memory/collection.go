// File path: internal/memory/collection.go

// Package memory holds the in-memory knowledge base the scoring functions read
// from. The collection mirrors the durable catalog and is refreshed by the API
// layer on every write; scorers receive copies and never mutate shared state.
package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/imashishkh/commerce-kb/internal/kb"
)

var ErrNotFound = errors.New("resource not found")

// Collection is the RWMutex-guarded per-category mapping of resources.
type Collection struct {
	mu         sync.RWMutex
	order      []string
	byID       map[string]kb.Resource
	byCategory map[string][]string
}

func NewCollection() *Collection {
	return &Collection{
		byID:       make(map[string]kb.Resource),
		byCategory: make(map[string][]string),
	}
}

// Replace swaps the full contents of the collection, keeping the provided
// order as the canonical insertion order.
func (c *Collection) Replace(resources []kb.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = c.order[:0]
	c.byID = make(map[string]kb.Resource, len(resources))
	c.byCategory = make(map[string][]string)
	for _, res := range resources {
		if strings.TrimSpace(res.ID) == "" {
			continue
		}
		c.insertLocked(res)
	}
}

// Add inserts or updates a resource. Updates keep the original insertion
// position so scoring tie-breaks stay stable.
func (c *Collection) Add(res kb.Resource) {
	if strings.TrimSpace(res.ID) == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.byID[res.ID]; ok {
		c.removeFromCategoryLocked(old)
		c.byID[res.ID] = res
		c.byCategory[res.Category] = append(c.byCategory[res.Category], res.ID)
		return
	}
	c.insertLocked(res)
}

func (c *Collection) insertLocked(res kb.Resource) {
	c.order = append(c.order, res.ID)
	c.byID[res.ID] = res
	c.byCategory[res.Category] = append(c.byCategory[res.Category], res.ID)
}

// Remove deletes a resource by ID. Removing an unknown ID is a no-op error.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(c.byID, id)
	c.removeFromCategoryLocked(res)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Collection) removeFromCategoryLocked(res kb.Resource) {
	ids := c.byCategory[res.Category]
	for i, existing := range ids {
		if existing == res.ID {
			c.byCategory[res.Category] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(c.byCategory[res.Category]) == 0 {
		delete(c.byCategory, res.Category)
	}
}

// Get returns a copy of the resource with the given ID.
func (c *Collection) Get(id string) (kb.Resource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.byID[id]
	return res, ok
}

// All returns the resources in insertion order.
func (c *Collection) All() []kb.Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]kb.Resource, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByCategory returns the resources filed under the given category label, in
// insertion order.
func (c *Collection) ByCategory(category string) []kb.Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.byCategory[category]
	out := make([]kb.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Categories lists the category labels currently present, sorted.
func (c *Collection) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.byCategory))
	for category := range c.byCategory {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Touch records a resource access in the in-memory copy.
func (c *Collection) Touch(id string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}
	res.AccessCount++
	stamp := at.UTC()
	res.LastAccessed = &stamp
	c.byID[id] = res
	return nil
}

// Len reports the number of stored resources.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
