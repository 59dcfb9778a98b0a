package pipeline

import (
	"context"
	"fmt"
	"log"

	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

const (
	// Low temperature favors deterministic extraction; the output bound keeps
	// runaway generations from exhausting provider quotas.
	generationTemperature = 0.1
	maxOutputTokens       = 16384
)

// RawDocument is one uploaded file awaiting processing. It exists only for
// the duration of a processing request.
type RawDocument struct {
	FileName    string
	ContentType string
	CarrierName string
	Category    domain.DocumentCategory
	Data        []byte
}

// Result carries a completed run: the canonical document plus the validation
// summary callers persist alongside it. Degraded marks a run where excluded
// coverage entries outnumbered survivors; it is a warning, never a failure.
type Result struct {
	Document     *domain.ProcessedDocument
	Plans        []domain.PlanSummary
	ValidCount   int
	InvalidCount int
	Synthesized  bool
	Degraded     bool
}

// Processor runs the extraction pipeline: OCR text, prompt, model call, JSON
// recovery, coverage validation, normalization. One linear flow per document;
// the first failing stage aborts the run and nothing is retried here.
type Processor struct {
	extractor port.TextExtractor
	model     port.ModelClient
}

// NewProcessor creates a Processor over the given external collaborators.
func NewProcessor(extractor port.TextExtractor, model port.ModelClient) *Processor {
	return &Processor{extractor: extractor, model: model}
}

// ProcessDocument runs one document through every stage and returns the
// canonical result, or a PipelineError naming the stage that failed.
func (p *Processor) ProcessDocument(ctx context.Context, raw RawDocument) (*Result, error) {
	if len(raw.Data) == 0 {
		return nil, NewPipelineError(StageFormValidation, fmt.Errorf("document %q has no content", raw.FileName))
	}
	if !domain.IsValidCategory(raw.Category) {
		return nil, NewPipelineError(StageFormValidation, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, raw.Category))
	}

	text, err := p.extractor.ExtractText(ctx, port.ExtractInput{
		Data:        raw.Data,
		ContentType: raw.ContentType,
		FileName:    raw.FileName,
	})
	if err != nil {
		return nil, NewPipelineError(StageTextExtraction, err)
	}

	prompt := BuildQuoteExtractionPrompt(text, raw.FileName, raw.Category)
	responseText, err := p.model.Generate(ctx, port.GenerateInput{
		Prompt:          prompt,
		Temperature:     generationTemperature,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return nil, NewPipelineError(StageAIProcessing, err)
	}

	extracted, err := ExtractJSON(responseText)
	if err != nil {
		return nil, NewPipelineError(StageAIProcessing, err)
	}

	if raw.CarrierName != "" && extracted.Metadata.CarrierName == "" {
		extracted.Metadata.CarrierName = raw.CarrierName
	}

	validation := ValidateCoverages(extracted.Coverages, &extracted.Metadata)
	degraded := validation.InvalidCount > validation.ValidCount
	if validation.InvalidCount > 0 {
		log.Printf("pipeline.Processor.ProcessDocument: %s: excluded %d of %d coverage entries (degraded=%t)",
			raw.FileName, validation.InvalidCount, validation.ValidCount+validation.InvalidCount, degraded)
	}

	doc := &domain.ProcessedDocument{
		Metadata:  extracted.Metadata,
		Coverages: validation.Valid,
		PlanNotes: extracted.PlanNotes,
	}

	return &Result{
		Document:     doc,
		Plans:        NormalizePlans(&doc.Metadata),
		ValidCount:   validation.ValidCount,
		InvalidCount: validation.InvalidCount,
		Synthesized:  validation.Synthesized,
		Degraded:     degraded,
	}, nil
}
