package org

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Unit is an organizational scope (branch/store). Every financial report is
// computed against exactly one unit.
type Unit struct {
	ID        uuid.UUID
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitRepository defines the read contract for unit lookup
type UnitRepository interface {
	// FindByID finds a unit by its ID, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindByCode finds a unit by its code
	FindByCode(ctx context.Context, code string) (*Unit, error)

	// FindAll returns all units ordered by code
	FindAll(ctx context.Context) ([]Unit, error)
}
