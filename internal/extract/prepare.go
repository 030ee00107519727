// Package extract prepares raw source documents for the extraction
// collaborator. County recorder portals serve deed text as HTML as often
// as plain text; either way the collaborator gets clean line-oriented text.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlTagRe = regexp.MustCompile(`(?i)<\s*(!doctype|html|head|body|div|p|table|span|br)\b`)

// blockTags start a new line in the extracted text, preserving the
// line-oriented layout deed fields rely on
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "pre": true,
}

// Prepare converts a raw source document into clean plain text. HTML is
// reduced to its visible text; plain text gets whitespace normalization.
func Prepare(raw string) string {
	text := raw
	if IsHTML(raw) {
		if stripped, err := visibleText(raw); err == nil {
			text = stripped
		}
	}
	return normalizeWhitespace(text)
}

// IsHTML reports whether the source looks like an HTML document
func IsHTML(raw string) bool {
	return htmlTagRe.MatchString(raw)
}

// visibleText extracts text nodes from HTML, skipping scripts and styles
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
			if blockTags[n.Data] {
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// normalizeWhitespace trims line endings and collapses runs of blank lines
// while keeping the line structure intact
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimLeft(line, " \t"), " \t")
	}

	out := strings.Join(lines, "\n")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
