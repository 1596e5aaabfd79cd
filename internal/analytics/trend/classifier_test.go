package trend

import (
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/models"
	"github.com/rs/zerolog"
)

func testClassifier() *Classifier {
	return NewClassifier(logging.NewWithWriter(io.Discard, zerolog.Disabled))
}

func statRow(crawl, mimeType string, pct float64) models.StatRow {
	return models.StatRow{
		Crawl:            crawl,
		MimeType:         mimeType,
		Pages:            100,
		URLs:             50,
		PctPagesPerCrawl: pct,
	}
}

// series builds rows for one MIME type across sequential crawls
func series(mimeType string, values ...float64) []models.StatRow {
	rows := make([]models.StatRow, len(values))
	for i, v := range values {
		rows[i] = statRow(fmt.Sprintf("C%02d", i+1), mimeType, v)
	}
	return rows
}

func TestClassify_DecliningMimeType(t *testing.T) {
	rows := []models.StatRow{
		statRow("C1", "text/html", 50.0),
		statRow("C2", "text/html", 40.0),
		statRow("C3", "text/html", 30.0),
		statRow("C4", "text/html", 20.0),
	}

	result := testClassifier().Classify(rows)

	history, ok := result.Declining["text/html"]
	if !ok {
		t.Fatal("Expected text/html to be classified as declining")
	}

	// The full, untrimmed history is retained
	if len(history) != 4 {
		t.Errorf("Expected 4-point history, got %d", len(history))
	}

	if len(result.Summary) != 1 {
		t.Fatalf("Expected one summary record, got %d", len(result.Summary))
	}
	if result.Summary[0].MimeType != "text/html" {
		t.Errorf("Expected summary for text/html, got %s", result.Summary[0].MimeType)
	}
	// Smoothed series [40 30], one diff of -10
	if math.Abs(result.Summary[0].AvgIncrease+10.0) > 1e-9 {
		t.Errorf("Expected avg_increase -10, got %v", result.Summary[0].AvgIncrease)
	}
}

func TestClassify_GrowingExcluded(t *testing.T) {
	result := testClassifier().Classify(series("video/mp4", 1.0, 2.0, 3.0, 4.0, 5.0))

	if _, ok := result.Declining["video/mp4"]; ok {
		t.Error("Growing MIME type must not appear in the output")
	}
}

func TestClassify_ConstantSeriesExcluded(t *testing.T) {
	result := testClassifier().Classify(series("image/png", 7.5, 7.5, 7.5, 7.5, 7.5))

	if _, ok := result.Declining["image/png"]; ok {
		t.Error("Constant series has avg_increase 0 and must be excluded")
	}
}

func TestClassify_SentinelLabelsExcluded(t *testing.T) {
	rows := series(models.MimeUnknown, 50.0, 40.0, 30.0, 20.0)
	rows = append(rows, series(models.MimeOther, 50.0, 40.0, 30.0, 20.0)...)
	rows = append(rows, series("text/css", 50.0, 40.0, 30.0, 20.0)...)

	result := testClassifier().Classify(rows)

	if _, ok := result.Declining[models.MimeUnknown]; ok {
		t.Error("<unknown> must never appear in the output")
	}
	if _, ok := result.Declining[models.MimeOther]; ok {
		t.Error("<other> must never appear in the output")
	}
	if _, ok := result.Declining["text/css"]; !ok {
		t.Error("Expected text/css to be classified as declining")
	}
}

func TestClassify_InsufficientDataSkipped(t *testing.T) {
	rows := series("application/pdf", 5.0, 4.0)

	// Must not crash, must not classify
	result := testClassifier().Classify(rows)
	if len(result.Declining) != 0 {
		t.Errorf("Expected empty output for a 2-point series, got %v", result.Declining)
	}
}

func TestClassify_ThreePointBoundary(t *testing.T) {
	// Exactly 3 raw points yield one smoothed point: no differences to
	// average, avg_increase 0, excluded.
	result := testClassifier().Classify(series("text/xml", 30.0, 20.0, 10.0))

	if _, ok := result.Declining["text/xml"]; ok {
		t.Error("Single smoothed point must be classified as non-declining")
	}
}

func TestClassify_AllZeroSeriesSkipped(t *testing.T) {
	result := testClassifier().Classify(series("application/x-dead", 0.0, 0.0, 0.0, 0.0, 0.0))

	if _, ok := result.Declining["application/x-dead"]; ok {
		t.Error("All-zero series must be excluded")
	}
}

func TestClassify_TrailingZerosTrimmed(t *testing.T) {
	// Raw values chosen so that the smoothed series ends in exact zeros:
	// MA3 of [15 15 15 9 3 0 0 0] = [15 13 9 4 1 0] -> trimmed [15 13 9 4 1]
	result := testClassifier().Classify(series("application/x-legacy",
		15.0, 15.0, 15.0, 9.0, 3.0, 0.0, 0.0, 0.0))

	record := findRecord(result.Summary, "application/x-legacy")
	if record == nil {
		t.Fatal("Expected application/x-legacy to be declining")
	}

	// Diffs over the trimmed tail [15 13 9 4 1]: mean of [-2 -4 -5 -3] = -3.5
	if math.Abs(record.AvgIncrease+3.5) > 1e-9 {
		t.Errorf("Expected avg_increase -3.5 after trailing-zero trim, got %v", record.AvgIncrease)
	}
}

func TestClassify_RowOrderIndependence(t *testing.T) {
	rows := []models.StatRow{
		statRow("C3", "text/html", 30.0),
		statRow("C1", "text/html", 50.0),
		statRow("C4", "text/html", 20.0),
		statRow("C2", "text/html", 40.0),
		statRow("C2", "image/gif", 2.0),
		statRow("C4", "image/gif", 4.0),
		statRow("C1", "image/gif", 1.0),
		statRow("C3", "image/gif", 3.0),
	}

	classifier := testClassifier()
	first := classifier.Classify(rows)
	second := classifier.Classify(rows)

	if len(first.Declining) != len(second.Declining) {
		t.Fatal("Repeated classification must yield identical output")
	}

	history := first.Declining["text/html"]
	if len(history) != 4 {
		t.Fatalf("Expected 4-point history, got %d", len(history))
	}
	for i, expected := range []string{"C1", "C2", "C3", "C4"} {
		if history[i].Crawl != expected {
			t.Errorf("History position %d: expected crawl %s, got %s", i, expected, history[i].Crawl)
		}
	}
}

func TestClassify_SummarySortedSteepestFirst(t *testing.T) {
	rows := series("text/html", 50.0, 40.0, 30.0, 20.0) // avg_increase -10
	rows = append(rows, series("text/css", 10.0, 9.0, 8.0, 7.0)...) // avg_increase -1

	result := testClassifier().Classify(rows)

	if len(result.Summary) != 2 {
		t.Fatalf("Expected 2 summary records, got %d", len(result.Summary))
	}
	if result.Summary[0].MimeType != "text/html" {
		t.Errorf("Steepest decline must come first, got %s", result.Summary[0].MimeType)
	}
	if result.Summary[0].AvgIncrease > result.Summary[1].AvgIncrease {
		t.Error("Summary must be sorted ascending by avg_increase")
	}
}

func TestClassify_OutputRecomputesNegative(t *testing.T) {
	rows := series("text/html", 50.0, 40.0, 30.0, 20.0)
	rows = append(rows, series("image/webp", 1.0, 2.0, 3.0, 4.0)...)
	rows = append(rows, series("application/x-legacy", 15.0, 15.0, 15.0, 9.0, 3.0, 0.0, 0.0, 0.0)...)

	result := testClassifier().Classify(rows)

	// Every MIME type in the output must recompute to a negative trend
	// from its returned history using the same procedure.
	for mimeType, history := range result.Declining {
		avgIncrease, err := AvgIncrease(history.Percentages())
		if err != nil {
			t.Errorf("%s: recomputation failed: %v", mimeType, err)
			continue
		}
		if avgIncrease >= 0 {
			t.Errorf("%s: expected negative avg_increase, got %v", mimeType, avgIncrease)
		}
	}
}

func TestAvgIncrease_Errors(t *testing.T) {
	if _, err := AvgIncrease([]float64{1.0, 2.0}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}

	if _, err := AvgIncrease([]float64{0.0, 0.0, 0.0, 0.0}); !errors.Is(err, ErrAllZeroSeries) {
		t.Errorf("Expected ErrAllZeroSeries, got %v", err)
	}
}

func TestAvgIncrease_TailLimit(t *testing.T) {
	// 30 raw points: an old steep rise followed by a recent gentle
	// decline. Only the last 12 smoothed points count, so the old rise
	// must not mask the decline.
	values := make([]float64, 0, 30)
	for i := 0; i < 15; i++ {
		values = append(values, float64(i)*10.0)
	}
	for i := 0; i < 15; i++ {
		values = append(values, 140.0-float64(i))
	}

	avgIncrease, err := AvgIncrease(values)
	if err != nil {
		t.Fatalf("AvgIncrease failed: %v", err)
	}
	if avgIncrease >= 0 {
		t.Errorf("Expected negative trend over the trailing window, got %v", avgIncrease)
	}
}

func findRecord(summary []models.DeclineRecord, mimeType string) *models.DeclineRecord {
	for i := range summary {
		if summary[i].MimeType == mimeType {
			return &summary[i]
		}
	}
	return nil
}
