package ocr

import "fmt"

// ExtractionError indicates the text-extraction service failed: network,
// auth, unsupported file, or a job that finished without producing text.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps err as an ExtractionError.
func NewExtractionError(err error) *ExtractionError {
	return &ExtractionError{Err: err}
}
