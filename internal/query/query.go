// Package query normalizes raw headline filters against the fixed
// NewsData.io allow-lists and projects them onto request parameters.
package query

import (
	"net/url"
	"sort"
	"strings"
)

const (
	DefaultLanguage = "en"
	DefaultLimit    = 10
	MinLimit        = 1
	MaxLimit        = 100
)

var validCategories = map[string]bool{
	"business":      true,
	"entertainment": true,
	"general":       true,
	"health":        true,
	"science":       true,
	"sports":        true,
	"technology":    true,
}

var validCountries = map[string]bool{
	"us": true, "gb": true, "ca": true, "de": true, "fr": true,
	"ro": true, "in": true, "au": true, "cn": true, "jp": true,
	"kr": true, "za": true, "br": true, "mx": true,
}

// Filters is a normalized filter set. Zero-value string fields mean "absent"
// and are never forwarded to the API.
type Filters struct {
	Query    string
	Category string
	Country  string
	Language string
	Limit    int
}

// Normalize cleans raw filter inputs. Unknown categories and countries become
// absent rather than errors, language defaults to "en", and limit is clamped
// into [MinLimit, MaxLimit]. Never fails.
func Normalize(q, category, country, language string, limit int) Filters {
	f := Filters{
		Query:    q,
		Category: sanitizeCategory(category),
		Country:  sanitizeCountry(country),
		Language: language,
		Limit:    limit,
	}
	if f.Language == "" {
		f.Language = DefaultLanguage
	}
	if f.Limit < MinLimit {
		f.Limit = MinLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

func sanitizeCategory(cat string) string {
	c := strings.ToLower(cat)
	if validCategories[c] {
		return c
	}
	return ""
}

func sanitizeCountry(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if validCountries[c] {
		return c
	}
	return ""
}

// Params projects the filter set onto outbound request parameters. Absent
// fields are omitted entirely; Limit only truncates the fetched result and is
// never sent to the API.
func (f Filters) Params() url.Values {
	params := url.Values{}
	params.Set("language", f.Language)
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Country != "" {
		params.Set("country", f.Country)
	}
	return params
}

// CacheKey is the deterministic identifier for the non-limit fields.
// url.Values.Encode sorts by key, so construction order never matters.
func (f Filters) CacheKey() string {
	return f.Params().Encode()
}

// Describe renders the filter set for table titles and log lines,
// e.g. "technology headlines (country=us, language=en)".
func (f Filters) Describe() string {
	subject := "latest"
	if f.Category != "" {
		subject = f.Category
	}

	var details []string
	if f.Query != "" {
		details = append(details, "q="+f.Query)
	}
	if f.Country != "" {
		details = append(details, "country="+f.Country)
	}
	details = append(details, "language="+f.Language)

	return subject + " headlines (" + strings.Join(details, ", ") + ")"
}

// Categories returns the category allow-list, sorted.
func Categories() []string {
	return sortedKeys(validCategories)
}

// Countries returns the country-code allow-list, sorted.
func Countries() []string {
	return sortedKeys(validCountries)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
