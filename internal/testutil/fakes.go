// Package testutil provides in-memory fakes and helpers shared across
// package tests: settings/meta/membership stores and a controllable clock.
package testutil

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	membershipDomain "github.com/ngoinfo/copilot-gateway/internal/membership/domain"
)

// FakeClock implements clock.Clock with a controllable current time.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a FakeClock starting at now.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the fake clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MemorySettingRepository is an in-memory settings store.
type MemorySettingRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySettingRepository creates an empty in-memory settings store.
func NewMemorySettingRepository() *MemorySettingRepository {
	return &MemorySettingRepository{values: make(map[string]string)}
}

// Get retrieves a setting value by name. Returns ErrNotFound when absent.
func (r *MemorySettingRepository) Get(_ context.Context, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[name]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

// Set inserts or overwrites a setting.
func (r *MemorySettingRepository) Set(_ context.Context, name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = value
	return nil
}

// Delete removes a setting by name.
func (r *MemorySettingRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, name)
	return nil
}

// MemoryPrincipalMetaRepository is an in-memory per-principal metadata store.
type MemoryPrincipalMetaRepository struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryPrincipalMetaRepository creates an empty in-memory metadata store.
func NewMemoryPrincipalMetaRepository() *MemoryPrincipalMetaRepository {
	return &MemoryPrincipalMetaRepository{values: make(map[string]map[string]string)}
}

// Get retrieves a metadata value. Returns ErrNotFound when absent.
func (r *MemoryPrincipalMetaRepository) Get(_ context.Context, principalID, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[principalID][key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

// Set inserts or overwrites a metadata value.
func (r *MemoryPrincipalMetaRepository) Set(_ context.Context, principalID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values[principalID] == nil {
		r.values[principalID] = make(map[string]string)
	}
	r.values[principalID][key] = value
	return nil
}

// PassthroughTxManager implements database.TxManager without a real
// transaction; the function runs against the bare context.
type PassthroughTxManager struct{}

// WithTx runs fn directly.
func (PassthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MemoryMembershipRepository is an in-memory membership lookup.
type MemoryMembershipRepository struct {
	mu          sync.RWMutex
	memberships map[string][]membershipDomain.Membership
}

// NewMemoryMembershipRepository creates an empty in-memory membership lookup.
func NewMemoryMembershipRepository() *MemoryMembershipRepository {
	return &MemoryMembershipRepository{memberships: make(map[string][]membershipDomain.Membership)}
}

// SetActive replaces a principal's active memberships.
func (r *MemoryMembershipRepository) SetActive(principalID string, planIDs ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ms []membershipDomain.Membership
	for _, id := range planIDs {
		ms = append(ms, membershipDomain.Membership{PlanID: id})
	}
	r.memberships[principalID] = ms
}

// Active returns a principal's active memberships. An unknown principal has none.
func (r *MemoryMembershipRepository) Active(_ context.Context, principalID string) ([]membershipDomain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.memberships[principalID], nil
}
