// Package pipeline runs the fixed extraction sequence for one document:
// raw text -> corrected text -> layout -> raw fields -> canonical receipt,
// scored and validated. No stage shares state across documents.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/extract"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/standardize"
)

// Document is the input contract with the OCR collaborator: one text
// string plus an optional source identifier.
type Document struct {
	Text       string
	SourceName string
}

// Pipeline wires the extraction stages. All collaborators are read-only
// after construction, so one Pipeline serves any number of concurrent
// documents.
type Pipeline struct {
	logger       *slog.Logger
	corrector    *extract.Corrector
	classifier   *extract.Classifier
	extractor    *extract.FieldExtractor
	scorer       *extract.Scorer
	standardizer *standardize.Standardizer
	now          func() time.Time
}

// Option tweaks pipeline construction.
type Option func(*Pipeline)

// WithClock substitutes the process timestamp source. Tests use this to
// pin data_processamento.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

func New(logger *slog.Logger, registry *extract.Registry, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = extract.DefaultRegistry()
	}
	p := &Pipeline{
		logger:       logger,
		corrector:    extract.DefaultCorrector(),
		classifier:   extract.NewClassifier(registry),
		extractor:    extract.NewFieldExtractor(registry),
		scorer:       extract.NewScorer(registry),
		standardizer: standardize.NewStandardizer(logger),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process turns one OCR text into a canonical receipt. It never returns an
// error and never panics past its boundary: empty input and internal faults
// both terminate in an error receipt for this document only.
func (p *Pipeline) Process(ctx context.Context, doc Document) (receipt entity.Receipt) {
	traceID := uuid.NewString()
	processedAt := p.now()
	source := entity.SourceMeta{SourceFile: doc.SourceName, ProcessedAt: processedAt}

	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("pipeline.fault", "trace_id", traceID, "file", doc.SourceName, "panic", rec)
			receipt = errorReceipt(source, fmt.Sprintf("falha interna no processamento: %v", rec))
		}
	}()

	if err := ctx.Err(); err != nil {
		return errorReceipt(source, "processamento cancelado: "+err.Error())
	}

	if strings.TrimSpace(doc.Text) == "" {
		p.logger.Warn("pipeline.empty_input", "trace_id", traceID, "file", doc.SourceName)
		return errorReceipt(source, "Nenhum texto extraído da imagem")
	}

	corrected := p.corrector.Correct(extract.NormalizeWhitespace(doc.Text))
	layout := p.classifier.Classify(corrected)
	docType := p.classifier.DetectType(corrected, layout)
	fields := p.extractor.Extract(corrected, layout)

	receipt, _ = p.standardizer.Standardize(fields, layout, docType, source)
	receipt.Confidence = p.scorer.Score(layout, fields)
	receipt.Recognized = p.scorer.Recognized(layout, fields)
	receipt.Warnings = append(receipt.Warnings, standardize.Validate(receipt)...)

	p.logger.Info("pipeline.ok",
		"trace_id", traceID,
		"file", doc.SourceName,
		"layout", layout,
		"tipo", docType,
		"valor", receipt.Amount.StringFixed(2),
		"confianca", receipt.Confidence,
		"alertas", len(receipt.Warnings),
	)
	return receipt
}

// errorReceipt is the single hard-failure terminal state: generic layout,
// an error marker, no extracted fields.
func errorReceipt(source entity.SourceMeta, msg string) entity.Receipt {
	return entity.Receipt{
		ID:     standardize.SyntheticID(source),
		Layout: entity.LayoutGeneric,
		Type:   entity.TypeGeneric,
		Source: source,
		Err:    msg,
	}
}
