package pipeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"quotedesk/internal/domain"
	"quotedesk/internal/pipeline"
)

func TestBuildQuoteExtractionPrompt(t *testing.T) {
	prompt := pipeline.BuildQuoteExtractionPrompt(
		"Plan Option A\nDental Care $312.50/mo",
		"sunlife-renewal-2026.pdf",
		domain.CategoryRenegotiated,
	)

	// The closed coverage-type vocabulary is spelled out for the model.
	for _, ct := range domain.CoverageTypes {
		assert.Contains(t, prompt, ct)
	}

	assert.Contains(t, prompt, `exactly three keys: "metadata", "coverages", "planNotes"`)
	assert.Contains(t, prompt, "sunlife-renewal-2026.pdf")
	assert.Contains(t, prompt, string(domain.CategoryRenegotiated))
	assert.Contains(t, prompt, "Dental Care $312.50/mo")

	// The OCR text comes after the instruction block, never inside it.
	marker := strings.Index(prompt, "--- EXTRACTED DOCUMENT TEXT ---")
	text := strings.Index(prompt, "Dental Care $312.50/mo")
	assert.Greater(t, text, marker)
}

func TestBuildQuoteExtractionPrompt_Deterministic(t *testing.T) {
	a := pipeline.BuildQuoteExtractionPrompt("same text", "a.pdf", domain.CategoryCurrent)
	b := pipeline.BuildQuoteExtractionPrompt("same text", "a.pdf", domain.CategoryCurrent)
	assert.Equal(t, a, b)
}
