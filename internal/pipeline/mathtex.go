package pipeline

import (
	"regexp"
	"strings"
)

// Inline math delimiters recognized by client-side renderers (KaTeX, MathJax).
const (
	MathOpen  = `\(`
	MathClose = `\)`
)

// Precompiled regex patterns for performance.
var (
	// Zero-width spaces, joiners, and non-breaking spaces from scraped text
	invisibleChars = regexp.MustCompile("[​‌‍ ]")

	// a/b or a∕b with tokens of letters/digits/parens/hyphen; the root
	// symbol is included so 1/√3 becomes a fraction before root rewriting
	fractionPattern = regexp.MustCompile(`([a-zA-Z0-9()√-]+)\s*[∕/]\s*([a-zA-Z0-9()√-]+)`)

	// √x or sqrt x followed by a run of identifier/paren/brace/sign characters
	rootSymbolPattern = regexp.MustCompile(`√\s*([a-zA-Z0-9() {}+-]+)`)
	rootWordPattern   = regexp.MustCompile(`sqrt\s*([a-zA-Z0-9() {}+-]+)`)

	// Digit run followed by a degree spelling: the word circ, °, or ∘
	degreePattern = regexp.MustCompile(`(\d+)\s*(?:circ|°|∘)`)

	// Single letter immediately followed by digits, as in u0 or T1
	subscriptPattern = regexp.MustCompile(`\b([a-zA-Z])([0-9]+)\b`)

	// Intermediate \vec and \hat markers awaiting their identifier run
	vecMarkerPattern = regexp.MustCompile(`\\vec([a-zA-Z0-9]+)`)
	hatMarkerPattern = regexp.MustCompile(`\\hat([a-zA-Z])`)

	// Operators, digits, or any command produced by the passes above
	wrapTriggerPattern = regexp.MustCompile(`[=+\-*/\d]|\\(sqrt|vec|hat|frac|tan|sin|cos|log|ln)`)
)

// symbolTable maps literal Unicode symbols to LaTeX commands. The → and ^
// entries produce intermediate \vec and \hat markers: the correct brace
// target is only known once the rest of the text has been rewritten, so
// completeVectors finishes them last.
var symbolTable = [...][2]string{
	{"α", `\alpha`},
	{"β", `\beta`},
	{"γ", `\gamma`},
	{"θ", `\theta`},
	{"Ω", `\Omega`},
	{"π", `\pi`},
	{"→", `\vec`},
	{"^", `\hat`},
	{"∆", `\Delta`},
}

// functionNames are wrapped as commands wherever they occur, not word-bounded.
// Matching inside already-converted tokens is a known, accepted over-match.
var functionNames = [...]string{"tan", "sin", "cos", "log", "ln"}

// defaultUnits are letter+digit-adjacent unit abbreviations that must not be
// rewritten as subscripts. The source text writes both units and variable
// subscripts with the same surface form; this list is the only
// disambiguation signal and is necessarily incomplete.
var defaultUnits = [...]string{
	"mH", "mA", "ms", "cm", "kg", "gm", "rad", "mol", "nm", "eV", "atm",
}

// MathConverter rewrites plain-text math notation into LaTeX markup.
type MathConverter interface {
	ConvertMath(text string) string
}

// PlainMathConverter converts recognized plain-math notation to LaTeX and
// wraps mathy results in inline delimiters. It is heuristic and
// pattern-based, not an expression parser; text that matches nothing passes
// through unchanged.
type PlainMathConverter struct {
	units  map[string]bool
	passes []rewritePass
}

// rewritePass is one ordered substitution step. The pass order is a
// contract: later passes depend on the substitutions of earlier ones.
type rewritePass struct {
	name  string
	apply func(string) string
}

// NewPlainMathConverter creates a converter with the default unit exception
// list plus any extra units supplied by the caller.
func NewPlainMathConverter(extraUnits ...string) *PlainMathConverter {
	units := make(map[string]bool, len(defaultUnits)+len(extraUnits))
	for _, u := range defaultUnits {
		units[u] = true
	}
	for _, u := range extraUnits {
		units[u] = true
	}

	c := &PlainMathConverter{units: units}
	c.passes = []rewritePass{
		{"symbols", replaceSymbols},
		{"fractions", rewriteFractions},
		{"roots", rewriteRoots},
		{"degrees", rewriteDegrees},
		{"subscripts", c.rewriteSubscripts},
		{"functions", wrapFunctions},
		{"vectors", completeVectors},
	}
	return c
}

// ConvertMath rewrites recognized math notation in text and wraps the result
// in inline delimiters when the wrap heuristic fires. When it does not fire,
// the original (invisible-stripped) input is returned so that plain prose is
// never left with stray partial substitutions.
func (c *PlainMathConverter) ConvertMath(text string) string {
	text = strings.TrimSpace(invisibleChars.ReplaceAllString(text, ""))
	if text == "" {
		return ""
	}

	// Already wrapped: converting again would double-wrap.
	if strings.HasPrefix(text, MathOpen) && strings.HasSuffix(text, MathClose) {
		return text
	}

	original := text
	for _, p := range c.passes {
		text = p.apply(text)
	}

	if wrapTriggerPattern.MatchString(text) || strings.Contains(text, "E_{") {
		return MathOpen + text + MathClose
	}
	return original
}

func replaceSymbols(text string) string {
	for _, sub := range symbolTable {
		text = strings.ReplaceAll(text, sub[0], sub[1])
	}
	return text
}

// rewriteFractions converts slash-separated token pairs to \frac{a}{b}.
// Deliberately aggressive: false positives on non-math slashes are traded
// for recall on the dominant a/b notation in the source data.
func rewriteFractions(text string) string {
	return fractionPattern.ReplaceAllString(text, `\frac{$1}{$2}`)
}

// rewriteRoots handles both root spellings. The literal word runs first so
// it cannot re-match the "sqrt" inside output of the symbol rewrite.
func rewriteRoots(text string) string {
	text = rootWordPattern.ReplaceAllString(text, `\sqrt{$1}`)
	return rootSymbolPattern.ReplaceAllString(text, `\sqrt{$1}`)
}

func rewriteDegrees(text string) string {
	return degreePattern.ReplaceAllString(text, `${1}^{\circ}`)
}

// rewriteSubscripts turns u0 into u_{0} unless the whole token is a known
// unit abbreviation. The check is case-sensitive and whole-token.
func (c *PlainMathConverter) rewriteSubscripts(text string) string {
	return subscriptPattern.ReplaceAllStringFunc(text, func(tok string) string {
		if c.units[tok] {
			return tok
		}
		return tok[:1] + "_{" + tok[1:] + "}"
	})
}

func wrapFunctions(text string) string {
	for _, fn := range functionNames {
		text = strings.ReplaceAll(text, fn, `\`+fn)
	}
	return text
}

// completeVectors brace-wraps the identifier run following the intermediate
// \vec and \hat markers emitted by replaceSymbols.
func completeVectors(text string) string {
	text = vecMarkerPattern.ReplaceAllString(text, `\vec{$1}`)
	return hatMarkerPattern.ReplaceAllString(text, `\hat{$1}`)
}
