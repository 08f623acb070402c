package gateway

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText flattens the API's processed article HTML into plain text.
// Block-level elements become paragraph breaks so sentence offsets stay
// meaningful; script and style contents are dropped.
func ExtractText(raw []byte) string {
	root, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		// The API serves well-formed fragments; if parsing still fails,
		// the raw bytes are better than nothing.
		return strings.TrimSpace(string(raw))
	}
	var b strings.Builder
	walk(root, &b)
	return collapse(b.String())
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "table": true,
	"section": true, "article": true, "figcaption": true,
}

func walk(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return
		}
		if blockTags[n.Data] {
			b.WriteString("\n")
		}
	case html.TextNode:
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, b)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteString("\n")
	}
}

// collapse trims each line and squeezes blank-line runs down to one
// paragraph separator.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
