package port

import "context"

// ExtractInput carries one binary document for text extraction.
type ExtractInput struct {
	Data        []byte
	ContentType string
	FileName    string
}

// TextExtractor abstracts the external OCR/conversion service. Poll-until-done
// is the adapter's concern; callers see a synchronous call bounded by ctx.
type TextExtractor interface {
	ExtractText(ctx context.Context, input ExtractInput) (string, error)
}
