// Package pipeline implements the math-normalization and HTML-sanitization
// core.
//
// Two stateless transformations compose in a fixed order:
//   - PlainMathConverter rewrites plain-text math notation (Greek letters,
//     fractions, roots, degrees, subscripts, vectors) into LaTeX commands
//     and decides whether to wrap the result in inline math delimiters.
//   - FragmentSanitizer parses an HTML fragment, extracts opaque math
//     containers, strips attributes, discards structural wrapper tags, runs
//     the math converter on every text leaf, and normalizes whitespace and
//     line breaks before re-serializing.
//
// The sanitizer invokes the converter once per text node, never the reverse.
// Both are heuristic, best-effort rewrites: text and markup that match no
// pattern pass through unchanged. Question-block location and record I/O are
// handled elsewhere; this package only maps fragment strings to fragment
// strings.
package pipeline
