package report

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	// FindByIdentity returns the earliest-inserted report matching the exact
	// (mobile, dob) pair, or ErrNotFound.
	FindByIdentity(ctx context.Context, mobile, dob string) (*Report, error)
	// List returns reports newest-upload-first. A limit of zero or less
	// returns the entire store.
	List(ctx context.Context, limit, offset int) ([]*Report, int, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}
