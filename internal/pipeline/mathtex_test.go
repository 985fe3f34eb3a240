package pipeline

import (
	"strings"
	"testing"
)

func TestConvertMathSubscripts(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single letter with digit",
			input:    "u0",
			expected: `\(u_{0}\)`,
		},
		{
			name:     "letter with multi-digit run",
			input:    "v12",
			expected: `\(v_{12}\)`,
		},
		{
			name:     "subscript inside equation",
			input:    "u0=√2gh",
			expected: `\(u_{0}=\sqrt{2gh}\)`,
		},
		{
			name:     "uppercase letter",
			input:    "T1",
			expected: `\(T_{1}\)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathUnitExceptions(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	// Digit-prefixed unit spellings must never gain a subscript.
	for _, unit := range defaultUnits {
		unit := unit
		t.Run(unit, func(t *testing.T) {
			t.Parallel()

			input := "50" + unit
			got := conv.ConvertMath(input)
			if strings.Contains(got, "_{") {
				t.Errorf("ConvertMath(%q) = %q, subscript must not fire on a unit", input, got)
			}
		})
	}
}

func TestConvertMathUnitListIsExtensible(t *testing.T) {
	t.Parallel()

	// T2 looks exactly like a subscript candidate; registering it as a unit
	// must suppress the rewrite while the digit still triggers wrapping.
	conv := NewPlainMathConverter("T2")

	got := conv.ConvertMath("T2")
	if got != `\(T2\)` {
		t.Errorf("ConvertMath(\"T2\") = %q, want %q", got, `\(T2\)`)
	}

	// Unextended converter still rewrites.
	plain := NewPlainMathConverter()
	if got := plain.ConvertMath("T2"); got != `\(T_{2}\)` {
		t.Errorf("ConvertMath(\"T2\") = %q, want %q", got, `\(T_{2}\)`)
	}
}

func TestConvertMathFractions(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple pair",
			input:    "a/b",
			expected: `\(\frac{a}{b}\)`,
		},
		{
			name:     "division slash",
			input:    "a∕b",
			expected: `\(\frac{a}{b}\)`,
		},
		{
			name:     "root in denominator converted recursively",
			input:    "1/√3",
			expected: `\(\frac{1}{\sqrt{3}}\)`,
		},
		{
			name:     "spaces around slash",
			input:    "x / y",
			expected: `\(\frac{x}{y}\)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathRoots(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "root symbol",
			input:    "√2gh",
			expected: `\(\sqrt{2gh}\)`,
		},
		{
			name:     "literal sqrt word",
			input:    "sqrt(2)",
			expected: `\(\sqrt{(2)}\)`,
		},
		{
			name:     "root with parenthesized run",
			input:    "√2g(3h)",
			expected: `\(\sqrt{2g(3h)}\)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathDegrees(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ring operator",
			input:    "60∘",
			expected: `\(60^{\circ}\)`,
		},
		{
			name:     "degree sign",
			input:    "45°",
			expected: `\(45^{\circ}\)`,
		},
		{
			name:     "literal circ word",
			input:    "90circ",
			expected: `\(90^{\circ}\)`,
		},
		{
			name:     "theta equals sixty degrees",
			input:    "θ=60∘",
			expected: `\(\theta=60^{\circ}\)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathVectorsAndHats(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "arrow vector",
			input:    "→v",
			expected: `\(\vec{v}\)`,
		},
		{
			name:     "caret hat",
			input:    "^i",
			expected: `\(\hat{i}\)`,
		},
		{
			// No word boundary splits the marker from the digits, so the
			// whole run lands inside the braces unsubscripted.
			name:     "vector over identifier run",
			input:    "→v1",
			expected: `\(\vec{v1}\)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathFunctions(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	got := conv.ConvertMath("tanθ")
	if got != `\(\tan\theta\)` {
		t.Errorf("ConvertMath(\"tanθ\") = %q, want %q", got, `\(\tan\theta\)`)
	}
}

func TestConvertMathWrapDecision(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain prose passes through",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "energy subscript pattern triggers wrap",
			input:    "E_{k}",
			expected: `\(E_{k}\)`,
		},
		{
			name:     "equals sign triggers wrap",
			input:    "x=y",
			expected: `\(x=y\)`,
		},
		{
			// A lone Greek letter has no wrap trigger, so the partial
			// substitution is discarded and the original comes back.
			name:     "lone greek letter is returned unconverted",
			input:    "α",
			expected: "α",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathInvisibleCharacters(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "zero-width and nbsp stripped before conversion",
			input:    "​u0 ",
			expected: `\(u_{0}\)`,
		},
		{
			name:     "only invisible characters yields empty",
			input:    "​‌‍ ",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  Hello world  ",
			expected: "Hello world",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conv.ConvertMath(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertMath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMathIdempotenceGuard(t *testing.T) {
	t.Parallel()

	conv := NewPlainMathConverter()

	inputs := []string{"u0", "1/√3", "θ=60∘", "→v"}
	for _, input := range inputs {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			once := conv.ConvertMath(input)
			twice := conv.ConvertMath(once)
			if once != twice {
				t.Errorf("ConvertMath is not guarded: first %q, second %q", once, twice)
			}
		})
	}
}

func TestConvertMathPassOrder(t *testing.T) {
	t.Parallel()

	// The pass order is a contract: later passes depend on earlier output
	// (e.g. vector completion needs the markers from symbol replacement).
	want := []string{
		"symbols", "fractions", "roots", "degrees",
		"subscripts", "functions", "vectors",
	}

	conv := NewPlainMathConverter()
	if len(conv.passes) != len(want) {
		t.Fatalf("got %d passes, want %d", len(conv.passes), len(want))
	}
	for i, p := range conv.passes {
		if p.name != want[i] {
			t.Errorf("pass %d = %q, want %q", i, p.name, want[i])
		}
	}
}
