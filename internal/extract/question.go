// Package extract locates question blocks in scraped exam markup and parses
// them into structured records. It is tolerant by design: missing
// sub-elements yield empty fields, never errors, so a single malformed
// question cannot sink a batch.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Structural markers in the source feed.
const (
	questionBoxIDPrefix = "questionBox"
	optionGroupIDPrefix = "formGroupOption"
	questionClass       = "qsn-here"
	headerClass         = "ques-no"
	solutionClass       = "qn-solution"
	optionIndexClass    = "optionIndex"
	correctOptionClass  = "correct-active"
	fallbackQuestionID  = "mquestion"
)

// TypeMCQ is the only question type the source feed carries.
const TypeMCQ = "MCQ"

// Precompiled regex patterns.
var (
	// First integer in a header, e.g. "Q.12" -> 12
	firstNumber = regexp.MustCompile(`\d+`)

	// Leading punctuation/separators on the subject text
	leadingNonWord = regexp.MustCompile(`^\W+`)

	// A cleaned option that still looks like math gets a second
	// conversion pass
	mathyOption = regexp.MustCompile(`(?i)\\(sqrt|frac|tan|sin|cos|log|ln|[a-z]_\d+)`)

	// Solution header boilerplate removed from cleaned solutions
	solutionHeader = regexp.MustCompile(`(?i)<strong>Solution:</strong>`)
	solutionsPara  = regexp.MustCompile(`(?i)<p>Solutions</p>`)
)

// Question is one parsed exam question.
type Question struct {
	Subject       string
	Number        int
	Type          string
	Question      string
	Options       map[string]string
	CorrectAnswer string
	Solution      string
}

// FragmentCleaner is the sanitization pipeline the parser feeds every
// HTML-bearing field through.
type FragmentCleaner interface {
	Sanitize(fragment string) (string, error)
	ConvertMathText(fragment string) (string, error)
}

// QuestionParser extracts structured questions from a parsed document.
type QuestionParser struct {
	cleaner FragmentCleaner

	// minQuestionLen is the cleaned-question length below which the
	// fallback question container is consulted.
	minQuestionLen int
}

// NewQuestionParser creates a parser that cleans fields through cleaner.
func NewQuestionParser(cleaner FragmentCleaner, minQuestionLen int) *QuestionParser {
	return &QuestionParser{cleaner: cleaner, minQuestionLen: minQuestionLen}
}

// FindQuestionNodes returns every question block in doc: list items whose id
// starts with the question box prefix.
func (p *QuestionParser) FindQuestionNodes(doc *html.Node) []*html.Node {
	return findAll(doc, func(n *html.Node) bool {
		return isElement(n, "li") && hasIDPrefix(n, questionBoxIDPrefix)
	})
}

// ParseQuestion extracts one question record from a question block node.
// The node's subtree may be mutated (option index markers are consumed).
func (p *QuestionParser) ParseQuestion(li *html.Node) (Question, error) {
	q := Question{
		Type:    TypeMCQ,
		Options: make(map[string]string),
	}

	p.parseHeader(li, &q)

	if err := p.parseQuestionHTML(li, &q); err != nil {
		return q, err
	}
	if err := p.parseOptions(li, &q); err != nil {
		return q, err
	}
	if err := p.parseSolution(li, &q); err != nil {
		return q, err
	}

	return q, nil
}

// parseHeader pulls the question number from the header's strong element and
// the subject from the last text run of the header line.
func (p *QuestionParser) parseHeader(li *html.Node, q *Question) {
	header := findFirst(li, func(n *html.Node) bool { return hasClass(n, headerClass) })
	if header == nil {
		return
	}
	h6 := findFirst(header, func(n *html.Node) bool { return isElement(n, "h6") })
	if h6 == nil {
		return
	}

	if strong := findFirst(h6, func(n *html.Node) bool { return isElement(n, "strong") }); strong != nil {
		if m := firstNumber.FindString(textContent(strong)); m != "" {
			q.Number, _ = strconv.Atoi(m)
		}
	}

	parts := textParts(h6)
	if len(parts) > 0 {
		q.Subject = strings.TrimSpace(leadingNonWord.ReplaceAllString(parts[len(parts)-1], ""))
	}
}

// parseQuestionHTML joins the question blocks and cleans them. When the
// result is missing or suspiciously short, the fallback container wins.
func (p *QuestionParser) parseQuestionHTML(li *html.Node, q *Question) error {
	var parts []string
	for _, blk := range findAll(li, func(n *html.Node) bool { return hasClass(n, questionClass) }) {
		if inner := innerHTML(blk); strings.TrimSpace(inner) != "" {
			parts = append(parts, inner)
		}
	}

	var cleaned string
	if len(parts) > 0 {
		var err error
		cleaned, err = p.cleaner.Sanitize(strings.Join(parts, ""))
		if err != nil {
			return err
		}
	}

	if cleaned == "" || len(cleaned) < p.minQuestionLen {
		if fb := findFirst(li, func(n *html.Node) bool {
			return n.Type == html.ElementNode && attrVal(n, "id") == fallbackQuestionID
		}); fb != nil {
			var err error
			cleaned, err = p.cleaner.Sanitize(innerHTML(fb))
			if err != nil {
				return err
			}
		}
	}

	q.Question = strings.TrimSpace(cleaned)
	return nil
}

// parseOptions walks the option groups in order, assigning letters A..
// unless an index marker overrides them. The marker element is consumed so
// it never leaks into the option body.
func (p *QuestionParser) parseOptions(li *html.Node, q *Question) error {
	groups := findAll(li, func(n *html.Node) bool {
		return isElement(n, "div") && hasIDPrefix(n, optionGroupIDPrefix)
	})

	for idx, g := range groups {
		letter := string(rune('A' + idx))

		if span := findFirst(g, func(n *html.Node) bool { return hasClass(n, optionIndexClass) }); span != nil {
			if t := strings.TrimSpace(textContent(span)); t != "" {
				letter = t
			}
			span.Parent.RemoveChild(span)
		}

		if hasClass(g, correctOptionClass) {
			q.CorrectAnswer = letter
		}

		raw := ""
		if label := findFirst(g, func(n *html.Node) bool { return isElement(n, "label") }); label != nil {
			raw = strings.TrimSpace(innerHTML(label))
		} else {
			raw = strings.TrimSpace(innerHTML(g))
		}

		opt, err := p.cleaner.Sanitize(raw)
		if err != nil {
			return err
		}

		// Options are short; if the cleaned body still looks like math,
		// run the conversion once more over the whole fragment.
		if mathyOption.MatchString(opt) {
			if opt, err = p.cleaner.ConvertMathText(opt); err != nil {
				return err
			}
		}

		// Options render inline, so the block-wrap paragraph comes off.
		opt = strings.TrimSpace(opt)
		if strings.HasPrefix(opt, "<p>") && strings.HasSuffix(opt, "</p>") {
			opt = strings.TrimSpace(opt[len("<p>") : len(opt)-len("</p>")])
		}

		q.Options[letter] = opt
	}

	return nil
}

// parseSolution cleans the solution block and removes its header
// boilerplate.
func (p *QuestionParser) parseSolution(li *html.Node, q *Question) error {
	sol := findFirst(li, func(n *html.Node) bool { return hasClass(n, solutionClass) })
	if sol == nil {
		return nil
	}

	cleaned, err := p.cleaner.Sanitize(innerHTML(sol))
	if err != nil {
		return err
	}

	cleaned = strings.TrimSpace(solutionHeader.ReplaceAllString(cleaned, ""))
	cleaned = strings.TrimSpace(solutionsPara.ReplaceAllString(cleaned, ""))
	q.Solution = cleaned
	return nil
}
