package richtext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// leafSpan is a leaf node paired with its [start, end) span in the
// plain-text projection.
type leafSpan struct {
	node  *html.Node
	start int
	end   int
}

// isBreak reports whether n is a <br> element.
func isBreak(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Br
}

// leaves returns the projection leaves (text nodes and <br> elements) in
// document order.
func (s *Surface) leaves() []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n != s.root && (n.Type == html.TextNode || isBreak(n)) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(s.root)
	return out
}

// leafSpans returns the leaves with their projection spans. A <br>
// contributes one byte (its "\n").
func (s *Surface) leafSpans() []leafSpan {
	var spans []leafSpan
	pos := 0
	for _, leaf := range s.leaves() {
		size := 1
		if leaf.Type == html.TextNode {
			size = len(leaf.Data)
		}
		spans = append(spans, leafSpan{node: leaf, start: pos, end: pos + size})
		pos += size
	}
	return spans
}

// splitAt guarantees a node boundary at the given projection offset by
// splitting the text node containing it, if any. Offsets that already fall
// on a boundary (including anywhere around a <br>) need no split.
func (s *Surface) splitAt(offset int) {
	for _, sp := range s.leafSpans() {
		if sp.node.Type != html.TextNode {
			continue
		}
		if sp.start < offset && offset < sp.end {
			cut := offset - sp.start
			rest := &html.Node{Type: html.TextNode, Data: sp.node.Data[cut:]}
			sp.node.Parent.InsertBefore(rest, sp.node.NextSibling)
			sp.node.Data = sp.node.Data[:cut]
			return
		}
	}
}

// removeRange removes every leaf lying inside [start, end), assuming
// boundaries have been split onto node edges. It returns the leaf
// immediately preceding start, which anchors the subsequent insertion
// (nil when start is the beginning of the document).
func (s *Surface) removeRange(start, end int) *html.Node {
	var anchor *html.Node
	for _, sp := range s.leafSpans() {
		switch {
		case sp.end <= start:
			anchor = sp.node
		case sp.start >= start && sp.end <= end:
			sp.node.Parent.RemoveChild(sp.node)
		}
	}
	return anchor
}

// insertAt inserts the content nodes for text right after anchor (or at the
// start of the managed element when anchor is nil). Newlines become <br>
// elements. Returns the first and last inserted nodes; both are nil when
// text is empty.
func (s *Surface) insertAt(anchor *html.Node, text string) (first, last *html.Node) {
	nodes := contentNodes(text)
	if len(nodes) == 0 {
		return nil, nil
	}

	parent := s.root
	var before *html.Node
	if anchor != nil {
		parent = anchor.Parent
		before = anchor.NextSibling
	} else {
		before = s.root.FirstChild
	}
	for _, n := range nodes {
		parent.InsertBefore(n, before)
	}
	return nodes[0], nodes[len(nodes)-1]
}

// contentNodes builds the node sequence for inserted text: text nodes
// interleaved with <br> elements for each newline.
func contentNodes(text string) []*html.Node {
	var out []*html.Node
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, &html.Node{
				Type:     html.ElementNode,
				Data:     "br",
				DataAtom: atom.Br,
			})
		}
		if part != "" {
			out = append(out, &html.Node{Type: html.TextNode, Data: part})
		}
	}
	return out
}

// cleanupSlashSpacing removes spaces that would sit adjacent to a slash
// across the node boundaries of a fresh insertion. Only the inserted nodes
// and their immediate text-node siblings are examined — never the whole
// subtree.
func (s *Surface) cleanupSlashSpacing(first, last *html.Node) {
	if first != nil {
		joinSlashPair(textSibling(first.PrevSibling), first)
	}
	if last != nil {
		joinSlashPair(last, textSibling(last.NextSibling))
	}
}

// textSibling returns n when it is a text node, nil otherwise. A <br>
// between two pieces of text is a real line break and blocks slash joining.
func textSibling(n *html.Node) *html.Node {
	if n != nil && n.Type == html.TextNode {
		return n
	}
	return nil
}

// joinSlashPair trims the spaces between two adjacent text nodes when the
// seam touches a slash on either side.
func joinSlashPair(a, b *html.Node) {
	if a == nil || b == nil || a.Type != html.TextNode || b.Type != html.TextNode {
		return
	}
	if strings.HasSuffix(strings.TrimRight(a.Data, " "), "/") {
		a.Data = strings.TrimRight(a.Data, " ")
		b.Data = strings.TrimLeft(b.Data, " ")
	}
	if strings.HasPrefix(strings.TrimLeft(b.Data, " "), "/") {
		a.Data = strings.TrimRight(a.Data, " ")
		b.Data = strings.TrimLeft(b.Data, " ")
	}
}
