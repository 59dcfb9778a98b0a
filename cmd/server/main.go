package main

import (
	"fmt"
	"log"

	"quotedesk/internal/auth/jwtauth"
	"quotedesk/internal/config"
	"quotedesk/internal/email/noop"
	"quotedesk/internal/email/ses"
	"quotedesk/internal/handler"
	"quotedesk/internal/llm"
	"quotedesk/internal/llm/claude"
	"quotedesk/internal/llm/gemini"
	"quotedesk/internal/ocr"
	"quotedesk/internal/pipeline"
	"quotedesk/internal/port"
	"quotedesk/internal/repository/postgres"
	"quotedesk/internal/router"
	"quotedesk/internal/selection"
	"quotedesk/internal/service"
	s3storage "quotedesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	quoteRepo := postgres.NewQuoteDocumentRepo(db)
	shareRepo := postgres.NewShareLinkRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize pipeline collaborators
	extractor := ocr.NewClient(&cfg.OCR)
	model, err := buildModelClient(&cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to initialize model client: %w", err)
	}
	processor := pipeline.NewProcessor(extractor, model)

	// Selection working set
	selectionStore := selection.NewStore(cfg.Selection.TTL, cfg.Selection.PurgeInterval)

	// Email sender
	emailSender, err := buildEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	quoteSvc := service.NewQuoteService(quoteRepo, s3Client, processor, &cfg.S3, &cfg.Import)
	selectionSvc := service.NewSelectionService(quoteSvc, selectionStore)
	comparisonSvc := service.NewComparisonService(quoteRepo, selectionStore)
	shareSvc := service.NewShareService(shareRepo, comparisonSvc, emailSender, &cfg.Email)

	// Initialize handlers
	quoteH := handler.NewQuoteHandler(quoteSvc, cfg.Import.MaxFiles)
	selectionH := handler.NewSelectionHandler(selectionSvc)
	comparisonH := handler.NewComparisonHandler(comparisonSvc)
	shareH := handler.NewShareHandler(shareSvc)
	healthH := handler.NewHealthHandler(db, cfg.Server.Environment)

	// Token verification only; the portal identity service mints tokens
	verifier := jwtauth.NewVerifier(&cfg.JWT)

	// Setup router
	r := router.Setup(verifier, cfg.CORS.AllowedOrigins, quoteH, selectionH, comparisonH, shareH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildModelClient wires the primary provider and, when configured, wraps it
// with the secondary in a rate-limit fallback chain.
func buildModelClient(cfg *config.ModelConfig) (port.ModelClient, error) {
	primary, err := providerClient(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := providerClient(secondaryCfg)
	if err != nil {
		return nil, err
	}
	return llm.NewFallbackClient(primary, secondary), nil
}

func providerClient(cfg *config.ModelProviderConfig) (port.ModelClient, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewClient(cfg), nil
	case "claude":
		return claude.NewClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func buildEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	case "noop", "":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
