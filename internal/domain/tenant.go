package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tenant-related errors
var (
	ErrTenantIDEmpty   = errors.New("tenant ID cannot be empty")
	ErrTenantNameEmpty = errors.New("tenant name cannot be empty")
)

// TenantStatus represents the lifecycle state of a tenant.
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusArchived  TenantStatus = "archived"
)

// Tenant represents one isolated organizational scope. Every cache key and
// every tenant-scoped job payload carries a tenant ID; nothing in the async
// layer may cross tenant boundaries.
type Tenant struct {
	ID        string
	Name      string
	Status    TenantStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTenant creates a new active tenant with a generated identifier.
func NewTenant(name string) (*Tenant, error) {
	if name == "" {
		return nil, ErrTenantNameEmpty
	}
	now := time.Now().UTC()
	return &Tenant{
		ID:        "org-" + uuid.NewString(),
		Name:      name,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate checks that the tenant satisfies all domain invariants.
func (t *Tenant) Validate() error {
	if t.ID == "" {
		return ErrTenantIDEmpty
	}
	if t.Name == "" {
		return ErrTenantNameEmpty
	}
	return nil
}
