package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quotedesk/internal/config"
	"quotedesk/internal/domain"
	"quotedesk/internal/pipeline"
	"quotedesk/internal/port"
)

// backgroundTimeout bounds one document's pipeline run, OCR and model calls
// included.
const backgroundTimeout = 5 * time.Minute

// UploadQuoteInput is the DTO for quote upload requests.
type UploadQuoteInput struct {
	UploadedBy  uuid.UUID
	CarrierName string
	Category    domain.DocumentCategory
	File        multipart.File
	Header      *multipart.FileHeader
}

// ImportItemResult reports one document's outcome in a bulk import. The unit
// of success or failure is one document; one failure never blocks the rest.
type ImportItemResult struct {
	FileName string                `json:"file_name"`
	Document *domain.QuoteDocument `json:"document,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// QuoteService defines the quote document management contract.
type QuoteService interface {
	Upload(ctx context.Context, input UploadQuoteInput) (*domain.QuoteDocument, error)
	ImportBatch(ctx context.Context, inputs []UploadQuoteInput) []ImportItemResult
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error)
	ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.QuoteDocument, int, error)
	GetProcessedData(ctx context.Context, id uuid.UUID) (*domain.ProcessedDocument, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Reprocess(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ProcessDocument(ctx context.Context, doc *domain.QuoteDocument)
}

type quoteService struct {
	repo        port.QuoteDocumentRepository
	storage     port.ObjectStorage
	processor   *pipeline.Processor
	s3cfg       *config.S3Config
	concurrency int
}

// NewQuoteService creates a new QuoteService implementation.
func NewQuoteService(
	repo port.QuoteDocumentRepository,
	storage port.ObjectStorage,
	processor *pipeline.Processor,
	s3cfg *config.S3Config,
	importCfg *config.ImportConfig,
) QuoteService {
	concurrency := importCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	return &quoteService{
		repo:        repo,
		storage:     storage,
		processor:   processor,
		s3cfg:       s3cfg,
		concurrency: concurrency,
	}
}

func (s *quoteService) Upload(ctx context.Context, input UploadQuoteInput) (*domain.QuoteDocument, error) {
	if !domain.IsValidCategory(input.Category) {
		return nil, domain.ErrInvalidCategory
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	docID := uuid.New()
	s3Key := fmt.Sprintf("users/%s/quotes/%s/%s", input.UploadedBy, docID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	doc := &domain.QuoteDocument{
		ID:            docID,
		UploadedBy:    input.UploadedBy,
		FileName:      docID.String() + "." + ext,
		OriginalName:  input.Header.Filename,
		FileType:      fileType,
		FileSize:      input.Header.Size,
		ContentType:   contentType,
		S3Bucket:      s.s3cfg.Bucket,
		S3Key:         s3Key,
		CarrierName:   input.CarrierName,
		Category:      input.Category,
		Status:        domain.ProcessingStatusPending,
		ProcessedData: json.RawMessage("{}"),
	}

	log.Printf("quoteService.Upload: uploading quote %s (%s, %d bytes) for user %s",
		input.Header.Filename, contentType, input.Header.Size, input.UploadedBy)

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating quote document: %w", err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("quoteService.Upload: S3 upload failed for quote %s: %v", doc.ID, err)
		_ = s.repo.MarkFailed(ctx, doc.ID, string(pipeline.StageFileUpload), err.Error())
		return nil, domain.ErrUploadFailed
	}

	// Copy before launching the goroutine so the caller's value is
	// independent of background work.
	result := *doc

	go s.processInBackground(doc.ID)

	return &result, nil
}

// ImportBatch uploads and processes documents independently behind a
// semaphore so one slow or failing document never blocks the rest.
func (s *quoteService) ImportBatch(ctx context.Context, inputs []UploadQuoteInput) []ImportItemResult {
	results := make([]ImportItemResult, len(inputs))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, input UploadQuoteInput) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i].FileName = input.Header.Filename
			doc, err := s.Upload(ctx, input)
			if err != nil {
				results[i].Error = err.Error()
				return
			}
			results[i].Document = doc
		}(i, input)
	}
	wg.Wait()

	return results
}

func (s *quoteService) processInBackground(docID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()

	log.Printf("quoteService.processInBackground: starting processing for quote %s", docID)

	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		log.Printf("quoteService.processInBackground: failed to get quote %s: %v", docID, err)
		return
	}

	s.ProcessDocument(ctx, doc)
}

// ProcessDocument runs one stored quote through the pipeline and persists the
// outcome: the canonical three-key JSON plus the validation summary on
// success, the failing stage on error. A re-run replaces processed_data
// wholesale.
func (s *quoteService) ProcessDocument(ctx context.Context, doc *domain.QuoteDocument) {
	doc.Status = domain.ProcessingStatusProcessing
	if err := s.repo.UpdateProcessingResult(ctx, doc); err != nil {
		log.Printf("quoteService.ProcessDocument: failed to set processing status for %s: %v", doc.ID, err)
		return
	}

	data, err := s.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		s.failProcessing(ctx, doc, pipeline.NewPipelineError(pipeline.StageFileUpload, fmt.Errorf("downloading file: %w", err)))
		return
	}

	result, err := s.processor.ProcessDocument(ctx, pipeline.RawDocument{
		FileName:    doc.OriginalName,
		ContentType: doc.ContentType,
		CarrierName: doc.CarrierName,
		Category:    doc.Category,
		Data:        data,
	})
	if err != nil {
		s.failProcessing(ctx, doc, err)
		return
	}

	processed, err := json.Marshal(result.Document)
	if err != nil {
		s.failProcessing(ctx, doc, pipeline.NewPipelineError(pipeline.StageSave, fmt.Errorf("marshaling processed data: %w", err)))
		return
	}

	now := time.Now().UTC()
	doc.Status = domain.ProcessingStatusCompleted
	doc.ProcessedData = processed
	doc.ValidCoverages = result.ValidCount
	doc.InvalidCoverages = result.InvalidCount
	doc.Degraded = result.Degraded
	doc.ProcessedAt = &now

	if err := s.repo.UpdateProcessingResult(ctx, doc); err != nil {
		log.Printf("quoteService.ProcessDocument: failed to save result for %s: %v", doc.ID, err)
		return
	}

	log.Printf("quoteService.ProcessDocument: quote %s completed (%d valid, %d invalid, degraded=%t)",
		doc.ID, result.ValidCount, result.InvalidCount, result.Degraded)
}

func (s *quoteService) failProcessing(ctx context.Context, doc *domain.QuoteDocument, err error) {
	stage := pipeline.StageAIProcessing
	var pipeErr *pipeline.PipelineError
	if errors.As(err, &pipeErr) {
		stage = pipeErr.Stage
	}

	log.Printf("quoteService.ProcessDocument: quote %s failed at %s: %v", doc.ID, stage, err)
	if markErr := s.repo.MarkFailed(ctx, doc.ID, string(stage), err.Error()); markErr != nil {
		log.Printf("quoteService.failProcessing: failed to mark quote %s failed: %v", doc.ID, markErr)
	}
}

func (s *quoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *quoteService) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.QuoteDocument, int, error) {
	return s.repo.ListByUploader(ctx, userID, offset, limit)
}

func (s *quoteService) GetProcessedData(ctx context.Context, id uuid.UUID) (*domain.ProcessedDocument, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.ProcessingStatusCompleted {
		return nil, domain.ErrDocumentNotReady
	}

	var processed domain.ProcessedDocument
	if err := json.Unmarshal(doc.ProcessedData, &processed); err != nil {
		return nil, fmt.Errorf("unmarshaling processed data for %s: %w", id, err)
	}
	return &processed, nil
}

func (s *quoteService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, s.s3cfg.PresignExpiry)
}

// Reprocess re-runs the pipeline for a stored quote in the background.
func (s *quoteService) Reprocess(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("quoteService.Reprocess: re-running pipeline for quote %s", id)
	result := *doc
	go s.processInBackground(doc.ID)
	return &result, nil
}

func (s *quoteService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		log.Printf("quoteService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.repo.Delete(ctx, id)
}
