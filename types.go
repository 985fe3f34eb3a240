package extractor

// TypeMCQ is the question type assigned to every extracted record; the
// source feed only carries multiple-choice questions.
const TypeMCQ = "MCQ"

// DefaultMinQuestionLength is the cleaned-question length below which the
// fallback question container is consulted.
const DefaultMinQuestionLength = 50

// Question is one normalized exam question. The HTML-bearing fields hold
// sanitized fragments with math rendered as \(...\)-delimited LaTeX.
type Question struct {
	Subject       string            `json:"subject"`
	Number        int               `json:"question_no"`
	Type          string            `json:"question_type"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Solution      string            `json:"solution"`
}

// Input contains extraction parameters.
type Input struct {
	HTML string // scraped document containing question blocks (required)
}

// Result holds the outcome of one extraction run.
type Result struct {
	// Questions are the successfully extracted records, in document order.
	Questions []Question

	// Skipped counts question blocks dropped because of per-record
	// failures. A skipped record never aborts the batch.
	Skipped int
}

// Option configures an Extractor.
type Option func(*Extractor)

// extractorConfig holds internal configuration for Extractor.
type extractorConfig struct {
	workers           int
	minQuestionLength int
	extraUnits        []string
}

// WithWorkers sets how many question blocks are processed concurrently.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("extractor: WithWorkers count must be positive")
	}
	return func(e *Extractor) {
		e.cfg.workers = n
	}
}

// WithUnits extends the unit-abbreviation exception list consulted by the
// subscript heuristic. Entries are case-sensitive whole tokens.
func WithUnits(units ...string) Option {
	return func(e *Extractor) {
		e.cfg.extraUnits = append(e.cfg.extraUnits, units...)
	}
}

// WithMinQuestionLength overrides DefaultMinQuestionLength.
// Panics if n < 0.
func WithMinQuestionLength(n int) Option {
	if n < 0 {
		panic("extractor: WithMinQuestionLength must not be negative")
	}
	return func(e *Extractor) {
		e.cfg.minQuestionLength = n
	}
}
