package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuoteDocument is the persisted record of one uploaded carrier quote and the
// outcome of its pipeline run. ProcessedData holds the canonical three-key
// JSON (metadata, coverages, planNotes) and is replaced wholesale on re-runs.
type QuoteDocument struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	UploadedBy       uuid.UUID        `db:"uploaded_by" json:"uploaded_by"`
	FileName         string           `db:"file_name" json:"file_name"`
	OriginalName     string           `db:"original_name" json:"original_name"`
	FileType         FileType         `db:"file_type" json:"file_type"`
	FileSize         int64            `db:"file_size" json:"file_size"`
	ContentType      string           `db:"content_type" json:"content_type"`
	S3Bucket         string           `db:"s3_bucket" json:"s3_bucket"`
	S3Key            string           `db:"s3_key" json:"s3_key"`
	CarrierName      string           `db:"carrier_name" json:"carrier_name"`
	Category         DocumentCategory `db:"category" json:"category"`
	Status           ProcessingStatus `db:"status" json:"status"`
	FailedStage      string           `db:"failed_stage" json:"failed_stage"`
	ProcessingError  string           `db:"processing_error" json:"processing_error"`
	ProcessedData    json.RawMessage  `db:"processed_data" json:"processed_data"`
	ValidCoverages   int              `db:"valid_coverages" json:"valid_coverages"`
	InvalidCoverages int              `db:"invalid_coverages" json:"invalid_coverages"`
	Degraded         bool             `db:"degraded" json:"degraded"`
	ProcessedAt      *time.Time       `db:"processed_at" json:"processed_at"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// ShareLink lets a broker share a market comparison with a client by token.
type ShareLink struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Token          string          `db:"token" json:"token"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	RecipientEmail string          `db:"recipient_email" json:"recipient_email"`
	DocumentIDs    json.RawMessage `db:"document_ids" json:"document_ids"`
	CoverageTypes  json.RawMessage `db:"coverage_types" json:"coverage_types"`
	ExpiresAt      time.Time       `db:"expires_at" json:"expires_at"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Expired reports whether the link is past its expiry at the given instant.
func (s ShareLink) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
