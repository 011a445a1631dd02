package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Report maps to the report table: one uploaded patient PDF plus the identity
// fields patients use to retrieve it. The pair (mobile, dob) is the external
// identity for patient-side lookup; the record id is the primary identity for
// staff-side edit and delete. Both fields are opaque strings compared
// exactly: no trimming, no phone-number canonicalization, and dob is not
// validated as a calendar date.
//
// Uniqueness of (mobile, dob) is not enforced. Multiple reports may share the
// pair (repeat visits); lookup always resolves to the earliest-inserted
// record so repeated lookups never alternate between duplicates.
type Report struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientName  *string   `db:"patient_name" json:"patient_name,omitempty"`
	PatientEmail *string   `db:"patient_email" json:"patient_email,omitempty"`
	Mobile       string    `db:"mobile" json:"mobile"`
	DOB          string    `db:"dob" json:"dob"`
	FileURL      string    `db:"file_url" json:"file_url"`
	StorageKey   string    `db:"storage_key" json:"-"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// StorageKeyFor builds the object-store key for an upload. Keys are guessable
// by construction; they are not treated as secrets. The random suffix keeps
// two uploads for the same pair within one millisecond from overwriting each
// other in the bucket.
func StorageKeyFor(mobile, dob string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d_%s.pdf", mobile, dob, at.UnixMilli(), uuid.NewString()[:8])
}
