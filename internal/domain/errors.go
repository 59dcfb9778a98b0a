package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidCategory     = errors.New("invalid document category")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDocumentNotReady    = errors.New("document has not completed processing")
	ErrShareLinkExpired    = errors.New("share link has expired")
	ErrEmptySelection      = errors.New("selection must name at least one plan option")
)
