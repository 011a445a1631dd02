package credential

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const credentialCols = `id, username, password_hash, status, created_at, updated_at`

func (r *repoPG) scanCredential(row pgx.Row) (*Credential, error) {
	var c Credential
	err := row.Scan(&c.ID, &c.Username, &c.PasswordHash, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Credential) error {
	c.ID = uuid.New()
	if c.Status == "" {
		c.Status = StatusActive
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO credential (id, username, password_hash, status)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.Username, c.PasswordHash, c.Status)
	return err
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*Credential, error) {
	return r.scanCredential(r.pool.QueryRow(ctx,
		`SELECT `+credentialCols+` FROM credential WHERE username = $1`, username))
}
