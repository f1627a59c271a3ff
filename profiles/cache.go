// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package profiles

import (
	"context"
	"sync"

	"github.com/tastebook/tastebook/tastebookdb"
)

// Cache is the single source of truth for profile snapshots. Views that
// display profile state subscribe once instead of re-fetching ad hoc, so a
// save toggle refreshing the profile here propagates everywhere.
type Cache struct {
	dir *Directory

	mu       sync.RWMutex
	profiles map[string]*tastebookdb.UserProfile
	subs     []func(*tastebookdb.UserProfile)
}

// NewCache returns an empty cache over the directory.
func NewCache(dir *Directory) *Cache {
	return &Cache{
		dir:      dir,
		profiles: make(map[string]*tastebookdb.UserProfile),
	}
}

// Subscribe registers fn to be called with every refreshed profile.
// Subscribers must not block.
func (c *Cache) Subscribe(fn func(*tastebookdb.UserProfile)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Get returns the cached profile for userID, fetching it on first use.
func (c *Cache) Get(ctx context.Context, userID string) (*tastebookdb.UserProfile, error) {
	c.mu.RLock()
	cached := c.profiles[userID]
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return c.Refresh(ctx, userID)
}

// Refresh re-fetches the profile from the directory, replaces the cached
// snapshot and notifies subscribers.
func (c *Cache) Refresh(ctx context.Context, userID string) (*tastebookdb.UserProfile, error) {
	profile, err := c.dir.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.profiles[userID] = profile
	subs := make([]func(*tastebookdb.UserProfile), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(profile)
	}
	return profile, nil
}

// Put seeds the cache with an already-fetched profile, such as the result
// of CreateIfAbsent, and notifies subscribers.
func (c *Cache) Put(profile *tastebookdb.UserProfile) {
	c.mu.Lock()
	c.profiles[profile.UserID] = profile
	subs := make([]func(*tastebookdb.UserProfile), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(profile)
	}
}
