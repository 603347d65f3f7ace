// Package pipeline orchestrates OCR recognition and field extraction for
// one document, including the degrade-to-fallback policy when the engines
// produce too little signal.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cardsnap/idcard-extract/internal/engine"
	"github.com/cardsnap/idcard-extract/internal/extract"
	"github.com/cardsnap/idcard-extract/internal/schema"
)

// DefaultMinTextLength is the minimum cleaned-text length below which an
// extraction is considered insufficient.
const DefaultMinTextLength = 10

// DefaultTimeout bounds the combined primary-plus-secondary engine attempt
// sequence.
const DefaultTimeout = 30 * time.Second

// Taxonomy of total-failure conditions. Per-field misses are not errors;
// they degrade to empty fields in the record.
var (
	ErrNoUsableText           = errors.New("no usable text after normalization")
	ErrEngineUnavailable      = errors.New("no OCR engine available")
	ErrInsufficientExtraction = errors.New("extracted text below minimum length")
)

// State is a stage of the engine-selection state machine. Each state is
// attempted at most once per invocation and there are no retries within a
// state.
type State int

const (
	StatePrimary State = iota
	StateSecondary
	StateFallback
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePrimary:
		return "primary"
	case StateSecondary:
		return "secondary"
	case StateFallback:
		return "fallback"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Provenance tells callers whether a record was genuinely extracted or
// synthesized by the fallback policy. The original system hid this; the
// record alone cannot reveal it.
type Provenance string

const (
	ProvenanceExtracted Provenance = "extracted"
	ProvenanceFallback  Provenance = "fallback"
)

// Result is the outcome of one pipeline invocation. The record always
// carries the document schema's full key set.
type Result struct {
	ID         string
	DocType    schema.DocType
	Record     extract.Record
	Provenance Provenance
	EngineUsed string
	Warnings   []string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMinTextLength overrides the insufficient-text threshold.
func WithMinTextLength(n int) Option {
	return func(p *Pipeline) { p.minTextLen = n }
}

// WithTimeout overrides the overall engine-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithSeed seeds the fallback-record selection, making it reproducible.
// Seed 0 keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) {
		if seed != 0 {
			p.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// Pipeline runs the extraction for one document type. The text transform
// itself is pure and carries no shared mutable state; the only guarded
// member is the fallback RNG.
type Pipeline struct {
	extractor  *extract.Extractor
	minTextLen int
	timeout    time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a pipeline for a document type.
func New(docType schema.DocType, opts ...Option) (*Pipeline, error) {
	extractor, err := extract.NewExtractor(docType)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	p := &Pipeline{
		extractor:  extractor,
		minTextLen: DefaultMinTextLength,
		timeout:    DefaultTimeout,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ExtractText runs the pure text path on already-recognized OCR output.
// Input below the minimum cleaned length degrades to a fallback record;
// callers always receive a fully keyed record.
func (p *Pipeline) ExtractText(raw string) *Result {
	extraction := p.extractor.Extract(raw)
	if extraction.CleanedLength < p.minTextLen {
		return p.fallbackResult([]string{ErrNoUsableText.Error()})
	}
	return &Result{
		ID:         extraction.ID,
		DocType:    extraction.DocType,
		Record:     extraction.Record,
		Provenance: ProvenanceExtracted,
	}
}

// ExtractFile drives the engine state machine over a document file:
// Primary, then Secondary, then Fallback. Engine attempts are strictly
// sequential because the secondary is a correctness fallback, not a race.
// One timeout bounds the whole attempt sequence; hitting it is treated the
// same as engine failure. The returned error is nil even on fallback, which
// is a policy outcome, not an error.
func (p *Pipeline) ExtractFile(ctx context.Context, engines []engine.Engine, input engine.Input) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var warnings []string

	state := StatePrimary
	for _, eng := range engines[:min(len(engines), 2)] {
		if state != StatePrimary && state != StateSecondary {
			break
		}

		text, err := eng.Recognize(ctx, input)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s state: %v", state, err))
			state++
			continue
		}

		extraction := p.extractor.Extract(text)
		if extraction.CleanedLength < p.minTextLen {
			warnings = append(warnings,
				fmt.Sprintf("%s state: %v (%d < %d)", state, ErrInsufficientExtraction,
					extraction.CleanedLength, p.minTextLen))
			state++
			continue
		}

		return &Result{
			ID:         extraction.ID,
			DocType:    extraction.DocType,
			Record:     extraction.Record,
			Provenance: ProvenanceExtracted,
			EngineUsed: eng.Name(),
			Warnings:   warnings,
		}, nil
	}

	if len(engines) == 0 {
		warnings = append(warnings, ErrEngineUnavailable.Error())
	}
	return p.fallbackResult(warnings), nil
}

// fallbackResult draws one synthetic record uniformly at random from the
// fixed template set. This is the only randomness in the pipeline.
func (p *Pipeline) fallbackResult(warnings []string) *Result {
	templates := fallbackTemplates(p.extractor.Schema().Type)

	p.rngMu.Lock()
	pick := p.rng.Intn(len(templates))
	p.rngMu.Unlock()

	record := make(extract.Record, len(templates[pick]))
	for k, v := range templates[pick] {
		record[k] = v
	}

	return &Result{
		ID:         uuid.NewString(),
		DocType:    p.extractor.Schema().Type,
		Record:     record,
		Provenance: ProvenanceFallback,
		Warnings:   warnings,
	}
}
