package cache

import "time"

// Article is one headline as returned by the NewsData.io API. PubDateFormatted
// is derived locally after a fetch; every other field comes off the wire.
type Article struct {
	Title            string `json:"title"`
	SourceID         string `json:"source_id"`
	Link             string `json:"link"`
	Description      string `json:"description,omitempty"`
	PubDate          string `json:"pubDate"`
	PubDateFormatted string `json:"pubDateFormatted,omitempty"`
}

type entry struct {
	articles []Article
	created  time.Time
}

// Stats reports store counters since creation.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}
