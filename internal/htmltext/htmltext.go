// Package htmltext extracts plain text from pasted or uploaded HTML so
// saved web pages can be analyzed like plain transcripts.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements never contribute display text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
}

// blockElements get a newline appended so paragraphs stay separated.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "tr": true, "section": true, "article": true,
}

// Extract returns the visible text of an HTML document. If the input does
// not parse as HTML it is returned unchanged.
func Extract(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n")
		}
	}
	extractText(doc)

	return tidy(buf.String())
}

// IsHTML reports whether the input looks like markup rather than a
// plain transcript.
func IsHTML(s string) bool {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype") ||
		strings.HasPrefix(lower, "<html") ||
		(strings.Contains(lower, "<p") && strings.Contains(lower, "</"))
}

// tidy collapses runs of blank lines and trims whitespace per line.
func tidy(s string) string {
	var out []string
	blank := true
	for _, line := range strings.Split(s, "\n") {
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
	return strings.TrimSpace(strings.Join(out, "\n"))
}
