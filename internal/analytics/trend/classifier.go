// Package trend classifies per-MIME-type usage histories from Common Crawl
// statistics as growing or declining.
package trend

import (
	"errors"
	"sort"

	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/models"
)

// TailCrawls bounds the trend computation to roughly the last year of
// crawls: at most this many trailing smoothed points are considered.
const TailCrawls = 12

var (
	// ErrInsufficientData indicates a series too short to smooth (fewer
	// raw points than the smoothing window).
	ErrInsufficientData = errors.New("insufficient data points for smoothing")

	// ErrAllZeroSeries indicates a smoothed series that is zero
	// everywhere, i.e. the MIME type has no recent observations.
	ErrAllZeroSeries = errors.New("smoothed series contains only zeros")
)

// Result holds the outcome of one classification pass.
type Result struct {
	// Declining maps each declining MIME type to its full, untrimmed
	// per-crawl usage history.
	Declining map[string]models.MimeHistory

	// Summary ranks every declining MIME type by ascending average
	// increase, steepest decline first.
	Summary []models.DeclineRecord
}

// Classifier computes which MIME types decline in usage over time.
type Classifier struct {
	logger *logging.Logger
}

// NewClassifier creates a new Classifier
func NewClassifier(logger *logging.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Classify de-normalizes the flat statistics table into per-MIME-type
// usage histories and retains those whose smoothed usage trends downward
// over the trailing crawls. Rows may arrive in any order; the result is
// independent of input ordering. The ten steepest declines are logged.
func (c *Classifier) Classify(rows []models.StatRow) *Result {
	histories, mimeTypes := buildHistories(rows)

	declining := make(map[string]models.MimeHistory)
	var summary []models.DeclineRecord

	for _, mimeType := range mimeTypes {
		history := histories[mimeType]

		avgIncrease, err := AvgIncrease(history.Percentages())
		switch {
		case errors.Is(err, ErrInsufficientData):
			c.logger.Warn("Skipping MIME type with too few crawls",
				"mime_type", mimeType, "crawls", len(history))
			continue
		case errors.Is(err, ErrAllZeroSeries):
			// No recent observations at all; nothing to classify.
			c.logger.Debug("Skipping MIME type with no recent data", "mime_type", mimeType)
			continue
		}

		// Zero or positive trend means growing or flat.
		if avgIncrease >= 0 {
			continue
		}

		declining[mimeType] = history
		summary = append(summary, models.DeclineRecord{
			MimeType:    mimeType,
			AvgIncrease: avgIncrease,
		})
	}

	sort.Slice(summary, func(i, j int) bool {
		return summary[i].AvgIncrease < summary[j].AvgIncrease
	})

	top := summary
	if len(top) > 10 {
		top = top[:10]
	}
	c.logger.Info("Largest declines", "declines", top)
	c.logger.Debug("Declining MIME types", "mime_types", declining)

	return &Result{
		Declining: declining,
		Summary:   summary,
	}
}

// AvgIncrease computes the average trend of one raw usage series: a
// window-3 moving average, trailing zeros trimmed, restricted to the last
// TailCrawls points, then the mean of consecutive differences. A single
// surviving point has no differences and yields 0.0 (flat).
func AvgIncrease(values []float64) (float64, error) {
	smoothed := MovingAverage(values, SmoothingWindow)
	if smoothed == nil {
		return 0, ErrInsufficientData
	}

	smoothed = TrimTrailingZeros(smoothed)
	if len(smoothed) == 0 {
		return 0, ErrAllZeroSeries
	}

	if len(smoothed) > TailCrawls {
		smoothed = smoothed[len(smoothed)-TailCrawls:]
	}

	return Mean(Diffs(smoothed)), nil
}

// buildHistories groups rows by MIME type with each history ordered by
// ascending crawl id. A stable sort on the (mimetype, crawl) pair achieves
// grouping and ordering in one pass. Sentinel labels for unclassified
// content are dropped. The returned MIME type list is sorted, so callers
// iterate deterministically.
func buildHistories(rows []models.StatRow) (map[string]models.MimeHistory, []string) {
	sorted := make([]models.StatRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MimeType != sorted[j].MimeType {
			return sorted[i].MimeType < sorted[j].MimeType
		}
		return sorted[i].Crawl < sorted[j].Crawl
	})

	histories := make(map[string]models.MimeHistory)
	var mimeTypes []string

	for _, row := range sorted {
		if row.MimeType == models.MimeUnknown || row.MimeType == models.MimeOther {
			continue
		}

		if _, ok := histories[row.MimeType]; !ok {
			mimeTypes = append(mimeTypes, row.MimeType)
		}
		histories[row.MimeType] = append(histories[row.MimeType], models.CrawlStat{
			Crawl:      row.Crawl,
			Percentage: row.PctPagesPerCrawl,
		})
	}

	return histories, mimeTypes
}
