// Package models defines the data structures shared between the crawl
// statistics collaborator, the trend classifier and the HTTP layer.
package models

// Sentinel MIME type labels emitted by the Common Crawl statistics for
// content that could not be classified. Rows carrying them are excluded
// from trend analysis.
const (
	MimeUnknown = "<unknown>"
	MimeOther   = "<other>"
)

// StatRow is one observation from the pre-aggregated Common Crawl
// statistics table: the usage of one detected MIME type in one crawl.
type StatRow struct {
	Crawl            string  `json:"crawl"`
	MimeType         string  `json:"mimetype_detected"`
	Pages            int64   `json:"pages"`
	URLs             int64   `json:"urls"`
	PctPagesPerCrawl float64 `json:"pct_pages_per_crawl"`
}

// CrawlStat is a single point of a MIME type's usage history.
type CrawlStat struct {
	Crawl      string  `json:"crawl"`
	Percentage float64 `json:"pct_pages_per_crawl"`
}

// MimeHistory is the per-crawl usage history of one MIME type, unique per
// crawl and ordered by ascending crawl identifier. Crawl identifiers embed
// year and week, so lexicographic order approximates chronological order.
type MimeHistory []CrawlStat

// Percentages extracts the ordered usage percentages from the history.
func (h MimeHistory) Percentages() []float64 {
	values := make([]float64, len(h))
	for i, s := range h {
		values[i] = s.Percentage
	}
	return values
}

// DeclineRecord summarizes the trend of one MIME type. AvgIncrease is the
// mean of consecutive differences over the trailing smoothed usage series;
// negative values indicate decline.
type DeclineRecord struct {
	MimeType    string  `json:"mime_type"`
	AvgIncrease float64 `json:"avg_increase"`
}
