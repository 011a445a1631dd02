package credential

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, c *Credential) error
	GetByUsername(ctx context.Context, username string) (*Credential, error)
}
