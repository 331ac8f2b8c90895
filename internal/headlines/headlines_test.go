package headlines

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Andrew77447/newsapp/internal/cache"
	"github.com/Andrew77447/newsapp/internal/newsdata"
	"github.com/Andrew77447/newsapp/internal/query"
)

// fakeClient counts remote calls and returns a canned result or error.
type fakeClient struct {
	articles []cache.Article
	err      error
	calls    int
}

func (f *fakeClient) Latest(ctx context.Context, params url.Values) ([]cache.Article, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]cache.Article, len(f.articles))
	copy(out, f.articles)
	return out, nil
}

func fiveArticles() []cache.Article {
	articles := make([]cache.Article, 5)
	for i := range articles {
		articles[i] = cache.Article{
			Title:    "Article " + string(rune('A'+i)),
			SourceID: "wired",
			Link:     "https://example.com/" + string(rune('a'+i)),
			PubDate:  "2023-08-29 12:34:56",
		}
	}
	return articles
}

func newTestService(client Fetcher) *Service {
	return NewService(client, cache.NewStore(5*time.Minute, 16), nil)
}

func TestFetchEndToEnd(t *testing.T) {
	restore := time.Local
	time.Local = time.UTC
	defer func() { time.Local = restore }()

	client := &fakeClient{articles: fiveArticles()}
	svc := newTestService(client)

	filters := query.Normalize("", "technology", "us", "en", 3)
	got, err := svc.Fetch(context.Background(), filters)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 articles with limit=3, got %d", len(got))
	}
	for i, a := range got {
		if a.PubDateFormatted == "" {
			t.Errorf("article %d: expected non-empty formatted date", i)
		}
	}
	// Original order preserved.
	if got[0].Title != "Article A" || got[2].Title != "Article C" {
		t.Errorf("expected original order, got %q..%q", got[0].Title, got[2].Title)
	}
}

func TestFetchCacheHitAcrossLimits(t *testing.T) {
	client := &fakeClient{articles: fiveArticles()}
	svc := newTestService(client)

	first, err := svc.Fetch(context.Background(), query.Normalize("", "technology", "us", "en", 2))
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(first))
	}

	// Same non-limit fields, bigger limit: must be served from cache.
	second, err := svc.Fetch(context.Background(), query.Normalize("", "technology", "us", "en", 20))
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(second) != 5 {
		t.Fatalf("expected the full cached set of 5, got %d", len(second))
	}
	if client.calls != 1 {
		t.Errorf("expected a single remote call, got %d", client.calls)
	}
	if second[0].Title != first[0].Title {
		t.Error("expected both results drawn from the same underlying set")
	}
}

func TestFetchDifferentFiltersMissCache(t *testing.T) {
	client := &fakeClient{articles: fiveArticles()}
	svc := newTestService(client)

	svc.Fetch(context.Background(), query.Normalize("", "technology", "us", "en", 5))
	svc.Fetch(context.Background(), query.Normalize("", "technology", "gb", "en", 5))

	if client.calls != 2 {
		t.Errorf("expected 2 remote calls for distinct filter sets, got %d", client.calls)
	}
}

func TestFetchExpiryTriggersRefetch(t *testing.T) {
	client := &fakeClient{articles: fiveArticles()}
	svc := NewService(client, cache.NewStore(30*time.Millisecond, 16), nil)

	filters := query.Normalize("", "science", "", "en", 5)
	svc.Fetch(context.Background(), filters)
	time.Sleep(50 * time.Millisecond)
	svc.Fetch(context.Background(), filters)

	if client.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", client.calls)
	}
}

func TestFetchFreshBypassesCacheRead(t *testing.T) {
	client := &fakeClient{articles: fiveArticles()}
	svc := newTestService(client)

	filters := query.Normalize("", "", "", "en", 5)
	svc.Fetch(context.Background(), filters)
	svc.FetchFresh(context.Background(), filters)

	if client.calls != 2 {
		t.Fatalf("expected FetchFresh to hit the remote, got %d calls", client.calls)
	}

	// The fresh result was stored, so a normal fetch hits again.
	svc.Fetch(context.Background(), filters)
	if client.calls != 2 {
		t.Errorf("expected cached result after FetchFresh, got %d calls", client.calls)
	}
}

func TestFetchTransportError(t *testing.T) {
	client := &fakeClient{err: errors.New("dial tcp: connection refused")}
	svc := newTestService(client)

	got, err := svc.Fetch(context.Background(), query.Normalize("", "", "", "", 10))
	if got != nil {
		t.Error("expected nil articles on transport failure")
	}
	if err == nil || !strings.HasPrefix(err.Error(), "communication error: ") {
		t.Errorf("expected communication error prefix, got %v", err)
	}
}

func TestFetchAPIError(t *testing.T) {
	client := &fakeClient{err: &newsdata.APIError{Code: "RateLimited", Message: "too many requests"}}
	svc := newTestService(client)

	got, err := svc.Fetch(context.Background(), query.Normalize("", "", "", "", 10))
	if got != nil {
		t.Error("expected nil articles on API failure")
	}
	if err == nil || !strings.HasPrefix(err.Error(), "API error: ") {
		t.Errorf("expected API error prefix, got %v", err)
	}
	if !strings.Contains(err.Error(), "too many requests") {
		t.Errorf("expected the API message surfaced, got %v", err)
	}
}

func TestFormatPubDate(t *testing.T) {
	restore := time.Local
	time.Local = time.UTC
	defer func() { time.Local = restore }()

	svc := newTestService(&fakeClient{})

	tests := []struct {
		input string
		want  string
	}{
		{"2023-08-29 12:34:56", "29 Aug 2023, 12:34"},
		{"not-a-date", "not-a-date"},
		{"2023-08-29T12:34:56Z", "2023-08-29T12:34:56Z"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := svc.formatPubDate(tt.input); got != tt.want {
			t.Errorf("formatPubDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFetchBadDateDoesNotAbortBatch(t *testing.T) {
	articles := fiveArticles()
	articles[2].PubDate = "yesterday-ish"
	client := &fakeClient{articles: articles}
	svc := newTestService(client)

	got, err := svc.Fetch(context.Background(), query.Normalize("", "", "", "en", 10))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected all 5 articles, got %d", len(got))
	}
	if got[2].PubDateFormatted != "yesterday-ish" {
		t.Errorf("expected raw passthrough for bad date, got %q", got[2].PubDateFormatted)
	}
	if got[0].PubDateFormatted == got[0].PubDate {
		t.Error("expected well-formed dates to be reformatted")
	}
}

// countingClient is safe for use from multiple goroutines.
type countingClient struct {
	articles []cache.Article
	calls    atomic.Int64
}

func (c *countingClient) Latest(ctx context.Context, params url.Values) ([]cache.Article, error) {
	c.calls.Add(1)
	out := make([]cache.Article, len(c.articles))
	copy(out, c.articles)
	return out, nil
}

func TestFetchConcurrent(t *testing.T) {
	client := &countingClient{articles: fiveArticles()}
	svc := newTestService(client)

	first := query.Normalize("", "technology", "us", "en", 5)
	second := query.Normalize("", "science", "gb", "en", 3)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				filters := first
				if (g+i)%2 == 0 {
					filters = second
				}
				got, err := svc.Fetch(context.Background(), filters)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if len(got) == 0 || len(got) > filters.Limit {
					t.Errorf("got %d articles, want between 1 and %d", len(got), filters.Limit)
					return
				}
				if got[0].Title != "Article A" {
					t.Errorf("got first title %q, want %q", got[0].Title, "Article A")
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if calls := client.calls.Load(); calls < 2 {
		t.Errorf("expected at least one remote call per query, got %d", calls)
	}
}
