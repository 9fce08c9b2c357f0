// Package ingest turns external sources into plain study text.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

var websiteHTTPClient httpDoer = &http.Client{Timeout: 10 * time.Second}

// maxWebsiteBytes caps how much of a page is read. Study material past
// this point won't fit a single completion anyway.
const maxWebsiteBytes = 5 << 20

var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"iframe":   true,
	"svg":      true,
	"canvas":   true,
	"template": true,
}

var blockTags = map[string]bool{
	"p":       true,
	"div":     true,
	"li":      true,
	"section": true,
	"article": true,
	"h1":      true,
	"h2":      true,
	"h3":      true,
	"h4":      true,
	"h5":      true,
	"h6":      true,
	"header":  true,
	"footer":  true,
	"nav":     true,
	"br":      true,
	"ul":      true,
	"ol":      true,
}

// Website fetches the page at urlStr and strips it down to its text
// content, so that any article may serve as study material.
func Website(ctx context.Context, urlStr string) (string, error) {
	u, err := url.ParseRequestURI(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "studycrew/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := websiteHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	ctype := resp.Header.Get("Content-Type")
	if ctype != "" &&
		!strings.Contains(ctype, "text/html") &&
		!strings.Contains(ctype, "application/xhtml+xml") &&
		!strings.Contains(ctype, "text/plain") {
		return "", fmt.Errorf("unsupported content-type: %s", ctype)
	}

	var r io.Reader = io.LimitReader(resp.Body, maxWebsiteBytes)
	ur, err := charset.NewReader(r, ctype)
	if err != nil {
		ur = r
	}

	return extractText(ur)
}

func extractText(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	skipDepth := 0
	var text strings.Builder

	writeNL := func() {
		if text.Len() == 0 {
			return
		}
		s := text.String()
		if s[len(s)-1] != '\n' {
			text.WriteByte('\n')
		}
	}

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		}
		switch tt {
		case html.StartTagToken:
			name := strings.ToLower(tokenizer.Token().Data)
			if skipTags[name] {
				skipDepth++
			}
			if blockTags[name] {
				writeNL()
			}
		case html.EndTagToken:
			name := strings.ToLower(tokenizer.Token().Data)
			if skipTags[name] && skipDepth > 0 {
				skipDepth--
			}
			if blockTags[name] {
				writeNL()
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			b := bytes.TrimSpace(tokenizer.Text())
			if len(b) == 0 {
				continue
			}
			for i, f := range bytes.Fields(b) {
				if i > 0 {
					text.WriteByte(' ')
				}
				text.Write(f)
			}
			text.WriteByte('\n')
		}
	}

	out := strings.TrimSpace(text.String())
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return out, nil
}
