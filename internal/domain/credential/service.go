package credential

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/diagnoclinic/report-portal/internal/platform/auth"
)

var (
	ErrNotFound = errors.New("credential not found")

	// ErrInvalidCredentials is deliberately undifferentiated: missing fields,
	// unknown username, inactive account and wrong password all map to it so
	// that the login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo      Repository
	jwtSecret []byte
}

func NewService(repo Repository, jwtSecret []byte) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// Login verifies a username/password pair and returns a signed bearer token
// plus the matching credential.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Credential, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("look up credential: %w", err)
	}

	if cred.Status != StatusActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.jwtSecret, cred.ID.String())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, cred, nil
}

// Provision creates a staff credential with a bcrypt-hashed password. Exposed
// through the CLI only; there is no self-registration endpoint.
func (s *Service) Provision(ctx context.Context, username, password, status string) (*Credential, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if status == "" {
		status = StatusActive
	}
	if status != StatusActive && status != StatusInactive {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := &Credential{
		Username:     username,
		PasswordHash: string(hash),
		Status:       status,
	}
	if err := s.repo.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}
	return cred, nil
}
