// Package richtext normalises the free text of metadata reports. Some M0
// values are HTML fragments pasted from the dissemination site; they are
// converted to Markdown so that the target literals hold readable text.
package richtext

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// Elements never carried over to the converted text.
var droppedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"object":   true,
	"embed":    true,
	"form":     true,
}

// Converter turns HTML fragments into Markdown.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a converter producing GitHub-flavoured Markdown.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Converter{converter: converter}
}

// Normalize returns text unchanged when it holds no markup, and its Markdown
// rendering otherwise.
func (c *Converter) Normalize(text string) (string, error) {
	body, ok := parseBody(text)
	if !ok || !hasElements(body) {
		return text, nil
	}
	removeElements(body)

	var sb strings.Builder
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	markdown, err := c.converter.ConvertString(sb.String())
	if err != nil {
		return "", err
	}
	return cleanMarkdown(markdown), nil
}

// HasMarkup reports whether text contains at least one HTML element.
func HasMarkup(text string) bool {
	body, ok := parseBody(text)
	return ok && hasElements(body)
}

func parseBody(text string) (*html.Node, bool) {
	if !strings.Contains(text, "<") {
		return nil, false
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, false
	}
	body := findElement(doc, "body")
	return body, body != nil
}

func hasElements(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode || hasElements(c) {
			return true
		}
	}
	return false
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func removeElements(n *html.Node) {
	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && droppedElements[node.Data] {
			toRemove = append(toRemove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	for _, node := range toRemove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
