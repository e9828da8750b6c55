package sources

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"spawnscraper/internal"
)

// Discover collects item page links from the spawn index page. Only links in
// the first cell of a wikitable row are taken; the other cells hold locations
// and member flags.
func Discover(r io.Reader, baseURL string) ([]internal.NameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	seen := map[string]struct{}{}
	out := []internal.NameRecord{}
	doc.Find("table.wikitable tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td").First().Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		title := strings.TrimSpace(link.AttrOr("title", link.Text()))
		if title == "" || !strings.HasPrefix(href, "/w/") {
			return
		}
		if _, dup := seen[title]; dup {
			return
		}
		seen[title] = struct{}{}

		page, err := base.Parse(strings.TrimPrefix(href, "/"))
		if err != nil {
			return
		}
		page.Fragment = ""
		q := page.Query()
		q.Set("action", "raw")
		page.RawQuery = q.Encode()

		out = append(out, internal.NameRecord{DisplayName: title, SourceID: page.String()})
	})
	return out, nil
}

// Format renders records in the line format Parse reads. A double quote in a
// name or URL cannot be represented and is rejected.
func Format(records []internal.NameRecord) (string, error) {
	b := strings.Builder{}
	for _, rec := range records {
		if strings.Contains(rec.DisplayName, `"`) || strings.Contains(rec.SourceID, `"`) {
			return "", fmt.Errorf("%w: quote in %q", ErrMalformedSourceLine, rec.DisplayName)
		}
		fmt.Fprintf(&b, "<a href=\"%s\" title=\"%s\">%s</a>\n",
			rec.SourceID, rec.DisplayName, html.EscapeString(rec.DisplayName))
	}
	return b.String(), nil
}

func WriteFile(path string, records []internal.NameRecord) error {
	text, err := Format(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// DiscoverRemote downloads the index page and runs Discover on it.
func DiscoverRemote(ctx context.Context, fetcher PageFetcher, baseURL, indexPage string) ([]internal.NameRecord, error) {
	indexURL := strings.TrimRight(baseURL, "/") + "/w/" + strings.TrimPrefix(indexPage, "/")
	body, err := fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	return Discover(strings.NewReader(body), baseURL)
}
