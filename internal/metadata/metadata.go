// Package metadata extracts link-preview metadata (OpenGraph, Twitter card and
// HTML title/description) from web pages cited in chat answers.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// userAgent is sent when fetching pages; some sites refuse unknown agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxBodySize caps how much of a page is read.
const maxBodySize = 2 << 20

// Metadata describes a linked page.
type Metadata struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName"`
}

// NormalizeURL parses raw, adding an https:// scheme when it is missing.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url is empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}
	return u.String(), nil
}

// Fetch downloads the page at rawURL and extracts its metadata.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (*Metadata, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %d", target, resp.StatusCode)
	}

	return Parse(io.LimitReader(resp.Body, maxBodySize), target)
}

// Parse extracts metadata from an HTML document. OpenGraph tags win over
// Twitter tags, which win over <title> and <meta name="description">.
// A relative image URL is resolved against pageURL.
func Parse(r io.Reader, pageURL string) (*Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	meta := map[string]string{}
	var title string
	collect(doc, meta, &title)

	m := &Metadata{
		URL:         pageURL,
		Title:       cleanText(first(meta["og:title"], meta["twitter:title"], title)),
		Description: cleanText(first(meta["og:description"], meta["twitter:description"], meta["description"])),
		Image:       first(meta["og:image"], meta["twitter:image"]),
		SiteName:    meta["og:site_name"],
	}
	m.Image = resolve(pageURL, m.Image)
	return m, nil
}

// collect walks the tree recording the first value seen for each meta key.
func collect(n *html.Node, meta map[string]string, title *string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "meta":
			key := attr(n, "property")
			if key == "" {
				key = attr(n, "name")
			}
			key = strings.ToLower(key)
			if key != "" {
				if _, seen := meta[key]; !seen {
					meta[key] = attr(n, "content")
				}
			}
		case "title":
			if *title == "" && n.FirstChild != nil {
				*title = textContent(n)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, meta, title)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// cleanText unescapes entities left inside attribute values and strips any
// markup, so "Tom &amp; <b>Jerry</b>" becomes "Tom & Jerry".
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(textContent(n))
	}
	return strings.TrimSpace(b.String())
}

func resolve(pageURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
