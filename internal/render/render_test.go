package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Andrew77447/newsapp/internal/cache"
)

func sampleArticles() []cache.Article {
	return []cache.Article{
		{Title: "Go 1.25 released", SourceID: "golangblog", Link: "https://go.dev/blog", PubDateFormatted: "29 Aug 2023, 12:34"},
		{Title: "Chips rally", SourceID: "reuters", Link: "https://reuters.com/x", PubDateFormatted: "29 Aug 2023, 10:00"},
	}
}

func TestArticlesEmpty(t *testing.T) {
	var buf bytes.Buffer
	Articles(&buf, nil, "latest headlines (language=en)", false)
	if !strings.Contains(buf.String(), "No news articles found") {
		t.Errorf("expected no-results notice, got %q", buf.String())
	}
}

func TestPlainListing(t *testing.T) {
	out := Plain(sampleArticles(), "latest headlines (language=en)")

	for _, want := range []string{
		"latest headlines (language=en)",
		"1. Go 1.25 released",
		"2. Chips rally",
		"source: reuters",
		"published: 29 Aug 2023, 12:34",
		"https://go.dev/blog",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected plain output to contain %q\ngot:\n%s", want, out)
		}
	}
}

func TestPlainHandlesMissingFields(t *testing.T) {
	out := Plain([]cache.Article{{}}, "latest")
	if !strings.Contains(out, "No title") {
		t.Errorf("expected title fallback, got:\n%s", out)
	}
	if !strings.Contains(out, "source: unknown") {
		t.Errorf("expected source fallback, got:\n%s", out)
	}
}

func TestTableContainsRowsAndLinks(t *testing.T) {
	out := Table(sampleArticles(), "technology headlines (country=us, language=en)")

	for _, want := range []string{
		"technology headlines (country=us, language=en)",
		"Go 1.25 released",
		"golangblog",
		"29 Aug 2023, 12:34",
		"URLs:",
		"https://reuters.com/x",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table output to contain %q", want)
		}
	}
}

func TestTableSkipsEmptyLinks(t *testing.T) {
	articles := sampleArticles()
	articles[1].Link = ""
	out := Table(articles, "latest")
	if strings.Count(out, "https://") != 1 {
		t.Errorf("expected exactly one link in the URL list:\n%s", out)
	}
}
