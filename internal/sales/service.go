package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zombor/pix-sales/internal/extraction"
	"github.com/zombor/pix-sales/internal/recognition"
)

// DefaultConcurrency bounds how many receipts are recognized at once
const DefaultConcurrency = 4

// IDGenerator generates unique IDs for batches
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service turns receipt uploads into sales outcomes
type Service struct {
	recognizer  recognition.Recognizer
	idGenerator IDGenerator
	timeSource  TimeSource
	concurrency int
}

// NewService creates a new Service with default ID generator and time source
func NewService(recognizer recognition.Recognizer, concurrency int) *Service {
	return NewServiceWithDeps(recognizer, &uuidGenerator{}, &defaultTimeSource{}, concurrency)
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(recognizer recognition.Recognizer, idGen IDGenerator, timeSrc TimeSource, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Service{
		recognizer:  recognizer,
		idGenerator: idGen,
		timeSource:  timeSrc,
		concurrency: concurrency,
	}
}

// ProcessOne recognizes and extracts a single receipt. A recognition failure
// is returned as an *extraction.ExtractionError outcome, never as an error.
func (s *Service) ProcessOne(ctx context.Context, cfg BatchConfig, upload Upload) extraction.Outcome {
	start := s.timeSource.Now()
	text, err := s.recognizer.Recognize(ctx, upload.Data, ContentTypeFor(upload.Filename, upload.ContentType))
	RecognitionDuration.Observe(s.timeSource.Now().Sub(start).Seconds())
	if err != nil {
		slog.Error("Failed to recognize receipt",
			"filename", upload.Filename,
			"content_type", upload.ContentType,
			"file_size", len(upload.Data),
			"undecodable", errors.Is(err, recognition.ErrUndecodable),
			"error", err,
		)
		OutcomesTotal.WithLabelValues("error").Inc()
		return extraction.NewExtractionError(upload.Filename, err)
	}

	return s.ExtractText(cfg, upload.Filename, text)
}

// ExtractText runs field extraction on already recognized text
func (s *Service) ExtractText(cfg BatchConfig, sourceLabel, text string) *extraction.SalesRecord {
	record := extraction.Extract(extraction.Input{
		RawText:      text,
		SourceLabel:  sourceLabel,
		ProductLabel: cfg.ProductLabel,
		UnitPrice:    cfg.UnitPrice,
	})

	if !record.HasDate() {
		MissingFieldsTotal.WithLabelValues("date").Inc()
	}
	if !record.HasPayer() {
		MissingFieldsTotal.WithLabelValues("payer").Inc()
	}
	if record.Amount.IsZero() {
		MissingFieldsTotal.WithLabelValues("amount").Inc()
	}
	OutcomesTotal.WithLabelValues("record").Inc()

	slog.Debug("Extracted receipt",
		"source", sourceLabel,
		"date", record.Date,
		"payer", record.PayerName,
		"amount", record.Amount.String(),
		"quantity", record.Quantity.String(),
	)
	return record
}

// ProcessBatch processes every upload concurrently and returns one outcome per
// upload in upload order. Per-receipt failures never abort the batch; the only
// error is the context ending before the batch completes.
func (s *Service) ProcessBatch(ctx context.Context, cfg BatchConfig, uploads []Upload) (*BatchResult, error) {
	if cfg.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price must not be negative: %s", cfg.UnitPrice)
	}

	batch := Batch{
		ID:           s.idGenerator.Generate(),
		ProductLabel: cfg.ProductLabel,
		UnitPrice:    cfg.UnitPrice,
		Size:         len(uploads),
		CreatedAt:    s.timeSource.Now(),
	}
	slog.Info("Processing batch", "batch_id", batch.ID, "product", cfg.ProductLabel, "unit_price", cfg.UnitPrice.String(), "size", len(uploads))

	outcomes := make([]extraction.Outcome, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, upload := range uploads {
		g.Go(func() error {
			outcomes[i] = s.ProcessOne(gctx, cfg, upload)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing batch %s: %w", batch.ID, err)
	}

	records, failures := extraction.Split(outcomes)
	slog.Info("Batch complete", "batch_id", batch.ID, "records", len(records), "errors", len(failures))

	return &BatchResult{Batch: batch, Outcomes: outcomes}, nil
}
