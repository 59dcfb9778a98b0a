package domain

// FileType represents the allowed file types for quote uploads.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// DocumentCategory classifies an uploaded quote relative to the client's current plan.
type DocumentCategory string

const (
	CategoryCurrent      DocumentCategory = "Current"
	CategoryRenegotiated DocumentCategory = "Renegotiated"
	CategoryAlternative  DocumentCategory = "Alternative"
)

// ValidCategories lists the accepted document categories in display order.
var ValidCategories = []DocumentCategory{CategoryCurrent, CategoryRenegotiated, CategoryAlternative}

// IsValidCategory reports whether c is one of the accepted document categories.
func IsValidCategory(c DocumentCategory) bool {
	switch c {
	case CategoryCurrent, CategoryRenegotiated, CategoryAlternative:
		return true
	}
	return false
}

// ProcessingStatus represents the lifecycle of a quote document run through the pipeline.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// CoverageTypeUnknown is assigned to the synthesized placeholder when no
// extracted coverage entry survives validation.
const CoverageTypeUnknown = "Unknown"

// CoverageTypes is the closed enumeration of benefit types a coverage entry
// may carry. Entries with a coverageType outside this list are invalid.
var CoverageTypes = []string{
	"Term Life",
	"Basic Life",
	"AD&D",
	"Dependent Life",
	"Critical Illness",
	"LTD",
	"STD",
	"Extended Healthcare",
	"Dental Care",
	"Vision",
	"EAP",
	"Prescription Drugs",
	"Paramedical",
	"Health Spending Account",
	"HSA",
}

var coverageTypeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CoverageTypes)+1)
	for _, t := range CoverageTypes {
		m[t] = struct{}{}
	}
	m[CoverageTypeUnknown] = struct{}{}
	return m
}()

// IsValidCoverageType reports whether t belongs to the closed coverage-type
// enumeration (the "Unknown" placeholder included).
func IsValidCoverageType(t string) bool {
	_, ok := coverageTypeSet[t]
	return ok
}

// UserRole defines the role hierarchy asserted by the portal identity service.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleBroker UserRole = "broker"
	RoleClient UserRole = "client"
)
