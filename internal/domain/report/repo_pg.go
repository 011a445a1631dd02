package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const reportCols = `id, patient_name, patient_email, mobile, dob, file_url, storage_key, uploaded_at`

func (r *repoPG) scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	err := row.Scan(&rep.ID, &rep.PatientName, &rep.PatientEmail, &rep.Mobile, &rep.DOB,
		&rep.FileURL, &rep.StorageKey, &rep.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &rep, err
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report (id, patient_name, patient_email, mobile, dob, file_url, storage_key, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rep.ID, rep.PatientName, rep.PatientEmail, rep.Mobile, rep.DOB,
		rep.FileURL, rep.StorageKey, rep.UploadedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return r.scanReport(r.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM report WHERE id = $1`, id))
}

// FindByIdentity pins the duplicate tie-break: earliest upload first, id as
// the final disambiguator so the result is stable across stores.
func (r *repoPG) FindByIdentity(ctx context.Context, mobile, dob string) (*Report, error) {
	return r.scanReport(r.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM report
		 WHERE mobile = $1 AND dob = $2
		 ORDER BY uploaded_at ASC, id ASC
		 LIMIT 1`, mobile, dob))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Report, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM report`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reportCols + ` FROM report ORDER BY uploaded_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Report
	for rows.Next() {
		rep, err := r.scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE report SET patient_name=$2, patient_email=$3, mobile=$4, dob=$5,
			file_url=$6, storage_key=$7
		WHERE id = $1`,
		rep.ID, rep.PatientName, rep.PatientEmail, rep.Mobile, rep.DOB,
		rep.FileURL, rep.StorageKey)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM report WHERE id = $1`, id)
	return err
}
