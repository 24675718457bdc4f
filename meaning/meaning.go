// Package meaning looks up name meanings on an external reference site.
// Any network or parse failure is reported as an error; callers treat
// errors and absent results identically and fall back to local notes.
package meaning

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	coreconfig "github.com/m3rciful/namebot/core/config"
	"github.com/m3rciful/namebot/core/logger"
)

// Meaning is a successful lookup result.
type Meaning struct {
	Name    string
	Meaning string
}

// Service fetches and parses meaning pages.
type Service struct {
	baseURL string
	client  *http.Client
}

// New builds a Service from config. The base URL must end with the path
// the page slug is appended to.
func New(cfg coreconfig.MeaningConfig) *Service {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Service{
		baseURL: base,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Lookup fetches the meaning page for a name. It returns nil without an
// error when the site has no page or the page carries no meaning text.
func (s *Service) Lookup(ctx context.Context, name string) (*Meaning, error) {
	slug := Slug(name)
	if slug == "" {
		return nil, nil
	}
	url := s.baseURL + slug + ".html"

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("meaning request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meaning fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.SVCMeaning.LogAttrs(ctx, slog.LevelDebug, "meaning.miss",
			slog.String("slug", slug),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("meaning fetch: unexpected status %s", resp.Status)
	}

	heading, text, err := parsePage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("meaning parse: %w", err)
	}
	if text == "" {
		return nil, nil
	}
	if heading == "" {
		heading = name
	}

	logger.SVCMeaning.LogAttrs(ctx, slog.LevelDebug, "meaning.hit",
		slog.String("slug", slug),
		slog.Duration("duration", logger.Took(start)),
	)
	return &Meaning{Name: heading, Meaning: text}, nil
}

// parsePage extracts the headline (h1[itemprop=headline]) and the second
// paragraph of the article body (article[itemprop=articleBody]).
func parsePage(r io.Reader) (heading, text string, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", "", err
	}

	var paragraphs []string
	var walk func(n *html.Node, inArticle bool)
	walk = func(n *html.Node, inArticle bool) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h1" && attrIs(n, "itemprop", "headline"):
				heading = strings.TrimSpace(nodeText(n))
			case n.Data == "article" && attrIs(n, "itemprop", "articleBody"):
				inArticle = true
			case n.Data == "p" && inArticle:
				paragraphs = append(paragraphs, strings.TrimSpace(nodeText(n)))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inArticle)
		}
	}
	walk(doc, false)

	if len(paragraphs) > 1 {
		text = paragraphs[1]
	}
	return heading, text, nil
}

func attrIs(n *html.Node, key, want string) bool {
	for _, a := range n.Attr {
		if a.Key == key && a.Val == want {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
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
