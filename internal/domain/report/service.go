package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diagnoclinic/report-portal/internal/platform/objectstore"
)

var (
	ErrNotFound   = errors.New("report not found")
	ErrValidation = errors.New("invalid report input")
)

const pdfContentType = "application/pdf"

type Service struct {
	repo    Repository
	objects objectstore.Store
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(repo Repository, objects objectstore.Store, logger zerolog.Logger) *Service {
	return &Service{repo: repo, objects: objects, logger: logger, now: time.Now}
}

// CreateInput carries a new upload. Name and Email are optional display
// fields; Mobile and DOB form the lookup identity and are required.
type CreateInput struct {
	Name   string
	Email  string
	Mobile string
	DOB    string
	File   io.Reader
}

// Create stores the PDF first and the record second. If the record insert
// fails after the blob landed, the blob is orphaned rather than the upload
// retried; orphans are logged for offline cleanup.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Report, error) {
	if in.Mobile == "" || in.DOB == "" {
		return nil, fmt.Errorf("%w: mobile and dob are required", ErrValidation)
	}
	if in.File == nil {
		return nil, fmt.Errorf("%w: report file is required", ErrValidation)
	}

	uploadedAt := s.now().UTC()
	key := StorageKeyFor(in.Mobile, in.DOB, uploadedAt)
	url, err := s.objects.Put(ctx, key, pdfContentType, in.File)
	if err != nil {
		return nil, fmt.Errorf("store report file: %w", err)
	}

	rep := &Report{
		Mobile:     in.Mobile,
		DOB:        in.DOB,
		FileURL:    url,
		StorageKey: key,
		UploadedAt: uploadedAt,
	}
	if in.Name != "" {
		rep.PatientName = &in.Name
	}
	if in.Email != "" {
		rep.PatientEmail = &in.Email
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		s.logger.Error().Err(err).Str("storage_key", key).
			Msg("report record insert failed after blob upload, blob orphaned")
		return nil, fmt.Errorf("create report record: %w", err)
	}
	return rep, nil
}

// Find resolves a patient lookup to the report download URL.
func (s *Service) Find(ctx context.Context, mobile, dob string) (string, error) {
	if mobile == "" || dob == "" {
		return "", fmt.Errorf("%w: mobile and dob are required", ErrValidation)
	}
	rep, err := s.repo.FindByIdentity(ctx, mobile, dob)
	if err != nil {
		return "", err
	}
	return rep.FileURL, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Report, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateInput carries a partial edit. Nil pointer fields are left untouched;
// a non-nil File replaces the stored PDF under a fresh key.
type UpdateInput struct {
	Name   *string
	Email  *string
	Mobile *string
	DOB    *string
	File   io.Reader
}

// Update applies text edits and, when a replacement file is provided, swaps
// the blob. The old blob delete is best effort: a failed delete leaves an
// orphan but never blocks the edit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			rep.PatientName = nil
		} else {
			rep.PatientName = in.Name
		}
	}
	if in.Email != nil {
		if *in.Email == "" {
			rep.PatientEmail = nil
		} else {
			rep.PatientEmail = in.Email
		}
	}
	if in.Mobile != nil {
		if *in.Mobile == "" {
			return nil, fmt.Errorf("%w: mobile cannot be empty", ErrValidation)
		}
		rep.Mobile = *in.Mobile
	}
	if in.DOB != nil {
		if *in.DOB == "" {
			return nil, fmt.Errorf("%w: dob cannot be empty", ErrValidation)
		}
		rep.DOB = *in.DOB
	}

	if in.File != nil {
		// Old blob goes first, then the replacement is uploaded. If the
		// upload then fails the record still points at the vanished blob;
		// that failure surfaces to the caller rather than being masked.
		if rep.StorageKey != "" {
			if err := s.objects.Delete(ctx, rep.StorageKey); err != nil &&
				!errors.Is(err, objectstore.ErrObjectNotFound) {
				s.logger.Warn().Err(err).Str("storage_key", rep.StorageKey).
					Msg("failed to delete replaced report file")
			}
		}
		key := StorageKeyFor(rep.Mobile, rep.DOB, s.now().UTC())
		url, err := s.objects.Put(ctx, key, pdfContentType, in.File)
		if err != nil {
			return nil, fmt.Errorf("store replacement file: %w", err)
		}
		rep.FileURL = url
		rep.StorageKey = key
	}

	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, fmt.Errorf("update report record: %w", err)
	}
	return rep, nil
}

// Delete removes the record and, best effort, its stored file. A blob delete
// failure is logged and the record delete proceeds so the report disappears
// from the portal either way.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rep.StorageKey != "" {
		if err := s.objects.Delete(ctx, rep.StorageKey); err != nil &&
			!errors.Is(err, objectstore.ErrObjectNotFound) {
			s.logger.Warn().Err(err).Str("storage_key", rep.StorageKey).
				Msg("failed to delete report file")
		}
	}
	return s.repo.Delete(ctx, id)
}
