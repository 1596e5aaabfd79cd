package crawlstats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/crawltrends/crawltrends/internal/models"
)

// Column names of the upstream statistics CSV. The percentage column is
// literally named "%pages/crawl" in the Common Crawl export.
const (
	colCrawl    = "crawl"
	colMimeType = "mimetype_detected"
	colPages    = "pages"
	colURLs     = "urls"
	colPctPages = "%pages/crawl"
)

// Parse converts the raw statistics CSV into typed rows. The header row
// determines column positions; any missing column or non-numeric value is
// a fatal input error.
func Parse(data []byte) ([]models.StatRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats csv: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("stats csv is empty")
	}

	index, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]models.StatRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record, index)
		if err != nil {
			// Header is line 1, so data line numbers start at 2
			return nil, fmt.Errorf("stats csv line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// columnIndex maps the required column names to their positions in the header
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for _, required := range []string{colCrawl, colMimeType, colPages, colURLs, colPctPages} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("stats csv is missing column %q", required)
		}
	}

	return index, nil
}

// parseRow coerces one CSV record into a typed StatRow
func parseRow(record []string, index map[string]int) (models.StatRow, error) {
	field := func(name string) (string, error) {
		i := index[name]
		if i >= len(record) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return record[i], nil
	}

	crawl, err := field(colCrawl)
	if err != nil {
		return models.StatRow{}, err
	}

	mimeType, err := field(colMimeType)
	if err != nil {
		return models.StatRow{}, err
	}

	pagesStr, err := field(colPages)
	if err != nil {
		return models.StatRow{}, err
	}
	pages, err := strconv.ParseInt(pagesStr, 10, 64)
	if err != nil {
		return models.StatRow{}, fmt.Errorf("invalid pages value %q: %w", pagesStr, err)
	}

	urlsStr, err := field(colURLs)
	if err != nil {
		return models.StatRow{}, err
	}
	urls, err := strconv.ParseInt(urlsStr, 10, 64)
	if err != nil {
		return models.StatRow{}, fmt.Errorf("invalid urls value %q: %w", urlsStr, err)
	}

	pctStr, err := field(colPctPages)
	if err != nil {
		return models.StatRow{}, err
	}
	pct, err := strconv.ParseFloat(pctStr, 64)
	if err != nil {
		return models.StatRow{}, fmt.Errorf("invalid %%pages/crawl value %q: %w", pctStr, err)
	}

	return models.StatRow{
		Crawl:            crawl,
		MimeType:         mimeType,
		Pages:            pages,
		URLs:             urls,
		PctPagesPerCrawl: pct,
	}, nil
}
