package credential

import (
	"time"

	"github.com/google/uuid"
)

// Credential statuses. Inactive accounts cannot log in.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Credential maps to the credential table: one record per staff user.
// Records are provisioned out-of-band (CLI) and never mutated by the API.
type Credential struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
