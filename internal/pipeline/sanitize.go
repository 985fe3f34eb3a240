package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// discardMode says what happens to a tag in the discard set.
type discardMode int

const (
	// discardTransparent removes the wrapper, keeping children in place.
	discardTransparent discardMode = iota
	// discardDestructive removes the element with its whole subtree.
	discardDestructive
)

// discardTags are structural tags removed during sanitization.
var discardTags = map[string]discardMode{
	"style":  discardDestructive,
	"script": discardDestructive,
	"div":    discardTransparent,
	"span":   discardTransparent,
	"h6":     discardTransparent,
	"table":  discardTransparent,
	"tr":     discardTransparent,
	"td":     discardTransparent,
	// The HTML5 parser inserts implicit table sections during fragment
	// parsing; they go out with the table.
	"tbody": discardTransparent,
	"thead": discardTransparent,
	"tfoot": discardTransparent,
	"input": discardTransparent,
	"label": discardTransparent,
	"form":  discardTransparent,
}

// allowedAttrs maps the tags that keep attributes to the keys they keep.
// Every other tag loses all attributes.
var allowedAttrs = map[string]map[string]bool{
	"img": {"src": true, "alt": true, "href": true},
	"a":   {"src": true, "alt": true, "href": true},
}

// opaqueMathTags are proprietary math containers whose text content is
// extracted in place before any structural pass runs.
var opaqueMathTags = map[string]bool{
	"fmath":         true,
	"mjx-container": true,
}

// blockPrefixes are the tag openers that satisfy the block-wrap guarantee.
var blockPrefixes = []string{
	"<p", "<img", "<ul", "<ol", "<li", "<br", "<strong", "<em", "<a",
	"<h1", "<h2", "<h3", "<h4", "<h5",
}

var (
	// Runs of whitespace in serialized output
	whitespaceRuns = regexp.MustCompile(`\s{2,}`)

	// Two or more consecutive line-break elements
	lineBreakRuns = regexp.MustCompile(`(<br\s*/?>\s*){2,}`)

	// Backslashes trailing a URL, before a quote/whitespace/closing bracket.
	// Observed data corruption in the source feed.
	strayURLBackslash = regexp.MustCompile(`(https?://[^\s"'<>\\]+)\\+(["'\s>])`)
)

// Sanitizer normalizes an HTML fragment into a structurally-sane form.
type Sanitizer interface {
	Sanitize(fragment string) (string, error)
	ConvertMathText(fragment string) (string, error)
}

// FragmentSanitizer strips attributes, discards structural wrapper tags,
// converts plain-math text nodes through a MathConverter, and guarantees a
// block-level container around the result.
type FragmentSanitizer struct {
	conv MathConverter
}

// NewFragmentSanitizer creates a sanitizer that runs conv on every
// text-bearing leaf.
func NewFragmentSanitizer(conv MathConverter) *FragmentSanitizer {
	return &FragmentSanitizer{conv: conv}
}

// Sanitize cleans one HTML fragment. Operations run in a fixed order:
// opaque math extraction, attribute stripping, tag discards, text-node math
// conversion, whitespace and line-break collapse, stray-backslash cleanup,
// and the block-wrap guarantee.
func (s *FragmentSanitizer) Sanitize(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	flattenMathContainers(root)
	stripAttributes(root)
	applyDiscards(root)
	s.convertTextNodes(root)

	out, err := renderChildren(root)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(whitespaceRuns.ReplaceAllString(out, " "))
	out = strings.TrimSpace(lineBreakRuns.ReplaceAllString(out, "<br/>"))
	out = strings.ReplaceAll(out, "<br>", "<br/>")
	out = strayURLBackslash.ReplaceAllString(out, "$1$2")

	return ensureBlockWrapped(out), nil
}

// ConvertMathText runs the math converter over every text node of fragment
// without any structural cleanup. Used for short fragments that already went
// through Sanitize but need a second conversion pass (e.g. mathy options).
func (s *FragmentSanitizer) ConvertMathText(fragment string) (string, error) {
	if fragment == "" {
		return "", nil
	}
	root, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	s.convertTextNodes(root)
	return renderChildren(root)
}

// parseFragment parses fragment in a body context and returns a detached
// body node holding the fragment's top-level nodes.
func parseFragment(fragment string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		ctx.AppendChild(n)
	}
	return ctx, nil
}

// renderChildren serializes the children of n in order.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// flattenMathContainers replaces proprietary math container elements with
// their concatenated text content. Runs before attribute stripping so the
// containers are opaque leaves for every later pass.
func flattenMathContainers(root *html.Node) {
	var containers []*html.Node
	walkNodes(root, func(n *html.Node) {
		if n.Type == html.ElementNode && opaqueMathTags[n.Data] {
			containers = append(containers, n)
		}
	})
	for _, n := range containers {
		text := &html.Node{Type: html.TextNode, Data: strippedText(n)}
		n.Parent.InsertBefore(text, n)
		n.Parent.RemoveChild(n)
	}
}

// strippedText concatenates the trimmed text leaves of n's subtree.
func strippedText(n *html.Node) string {
	var sb strings.Builder
	walkNodes(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(c.Data))
		}
	})
	return sb.String()
}

// stripAttributes clears attributes on every element except the allowlisted
// keys on img and a. URL-bearing values are trimmed and lose trailing
// backslashes left by the source feed.
func stripAttributes(root *html.Node) {
	walkNodes(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		kept, ok := allowedAttrs[n.Data]
		if !ok {
			n.Attr = nil
			return
		}
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if !kept[a.Key] {
				continue
			}
			val := strings.TrimSpace(a.Val)
			if a.Key == "src" || a.Key == "href" {
				val = strings.TrimSpace(strings.TrimRight(val, `\`))
			}
			attrs = append(attrs, html.Attribute{Key: a.Key, Val: val})
		}
		n.Attr = attrs
	})
}

// applyDiscards removes or unwraps every element in the discard set.
// Children are processed first so nested discards unwrap from the inside
// out, preserving sibling order.
func applyDiscards(n *html.Node) {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		if c.Type != html.ElementNode {
			continue
		}
		applyDiscards(c)
		mode, ok := discardTags[c.Data]
		if !ok {
			continue
		}
		switch mode {
		case discardDestructive:
			n.RemoveChild(c)
		case discardTransparent:
			unwrapNode(n, c)
		}
	}
}

// unwrapNode replaces c with its children, in place.
func unwrapNode(parent, c *html.Node) {
	for c.FirstChild != nil {
		child := c.FirstChild
		c.RemoveChild(child)
		parent.InsertBefore(child, c)
	}
	parent.RemoveChild(c)
}

// convertTextNodes applies the math converter to every text leaf that is not
// inside a script or style element. None remain after the discard pass, but
// the check guards direct ConvertMathText callers.
func (s *FragmentSanitizer) convertTextNodes(root *html.Node) {
	walkNodes(root, func(n *html.Node) {
		if n.Type != html.TextNode || insideRawText(n) {
			return
		}
		if out := s.conv.ConvertMath(n.Data); out != n.Data {
			n.Data = out
		}
	})
}

func insideRawText(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.Data == "script" || p.Data == "style") {
			return true
		}
	}
	return false
}

// ensureBlockWrapped wraps out in a paragraph unless it already starts with
// a known block or inline tag opener.
func ensureBlockWrapped(out string) string {
	if out == "" {
		return out
	}
	lower := strings.ToLower(out)
	for _, p := range blockPrefixes {
		if strings.HasPrefix(lower, p) {
			return out
		}
	}
	return "<p>" + out + "</p>"
}

// walkNodes visits n and its whole subtree in document order.
func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}
