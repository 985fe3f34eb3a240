package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/reddy-gopal/question-extractor/internal/extract"
	"github.com/reddy-gopal/question-extractor/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MathConverter  = (*pipeline.PlainMathConverter)(nil)
	_ pipeline.Sanitizer      = (*pipeline.FragmentSanitizer)(nil)
	_ extract.FragmentCleaner = (*pipeline.FragmentSanitizer)(nil)
)

// Extractor orchestrates the extraction pipeline: locate question blocks,
// then sanitize and math-convert every HTML-bearing field of each block.
// Create with NewExtractor and reuse freely: it holds no mutable state and
// is safe for concurrent use.
type Extractor struct {
	cfg     extractorConfig
	cleaner extract.FragmentCleaner
	parser  *extract.QuestionParser
}

// NewExtractor creates an Extractor with default configuration.
// Use options to customize behavior (e.g. WithWorkers, WithUnits).
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		cfg: extractorConfig{
			workers:           DefaultWorkers(),
			minQuestionLength: DefaultMinQuestionLength,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	// Create the pipeline if not injected (e.g., by tests)
	if e.cleaner == nil {
		conv := pipeline.NewPlainMathConverter(e.cfg.extraUnits...)
		e.cleaner = pipeline.NewFragmentSanitizer(conv)
	}
	e.parser = extract.NewQuestionParser(e.cleaner, e.cfg.minQuestionLength)

	return e
}

// Extract parses input.HTML, locates every question block, and returns the
// extracted records in document order. Question blocks are processed
// concurrently (bounded by WithWorkers); a failing block is counted in
// Result.Skipped and never aborts the batch.
func (e *Extractor) Extract(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.HTML) == "" {
		return nil, ErrEmptyDocument
	}

	doc, err := html.Parse(strings.NewReader(input.HTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseDocument, err)
	}

	nodes := e.parser.FindQuestionNodes(doc)
	if len(nodes) == 0 {
		return &Result{}, nil
	}

	type slot struct {
		q  extract.Question
		ok bool
	}
	slots := make([]slot, len(nodes))

	// Question subtrees are disjoint, so blocks process in parallel with
	// no coordination beyond the semaphore.
	sem := make(chan struct{}, e.cfg.workers)
	var wg sync.WaitGroup

	for i, n := range nodes {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, n *html.Node) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			// A panicking record is skipped, not fatal.
			defer func() { _ = recover() }()

			q, err := e.parser.ParseQuestion(n)
			if err != nil {
				return
			}
			slots[i] = slot{q: q, ok: true}
		}(i, n)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, s := range slots {
		if !s.ok {
			res.Skipped++
			continue
		}
		res.Questions = append(res.Questions, toQuestion(s.q))
	}
	return res, nil
}

// toQuestion converts the internal extract.Question to the public type.
func toQuestion(q extract.Question) Question {
	return Question{
		Subject:       q.Subject,
		Number:        q.Number,
		Type:          q.Type,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Solution:      q.Solution,
	}
}
