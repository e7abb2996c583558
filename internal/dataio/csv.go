// Package dataio reads and writes the pipeline's tabular artifacts. Output
// files carry a UTF-8 BOM so spreadsheet tools pick the encoding up; readers
// strip it back off.
package dataio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"steamscan/internal/models"
	"steamscan/internal/threat"
)

const bom = "\ufeff"

var productHeader = []string{"appid", "title", "released", "current_price", "original_price", "tags"}

var summaryHeader = []string{
	"appid", "title", "total_reviews", "suspicious_reviews", "threat_rate",
	"links", "keywords", "contacts", "avg_helpful", "chinese_reviews", "english_reviews",
}

var detailHeader = []string{
	"appid", "title", "review_index", "content", "page", "helpful", "language",
	"has_links", "has_keywords", "has_contacts", "links", "keywords", "contacts",
}

// WriteProducts writes the raw or cleaned product table.
func WriteProducts(path string, rows []models.ProductRecord) error {
	return writeCSV(path, productHeader, func(w *csv.Writer) error {
		for _, r := range rows {
			rec := []string{r.AppID, r.Title, r.Released, r.CurrentPrice, r.OriginalPrice, r.Tags}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadProducts reads a product table written by WriteProducts. Columns are
// positional; short rows are padded so a truncated file degrades to partial
// records instead of an error.
func ReadProducts(path string) ([]models.ProductRecord, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var out []models.ProductRecord
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		for len(rec) < len(productHeader) {
			rec = append(rec, "")
		}
		out = append(out, models.ProductRecord{
			AppID:         rec[0],
			Title:         rec[1],
			Released:      rec[2],
			CurrentPrice:  rec[3],
			OriginalPrice: rec[4],
			Tags:          rec[5],
		})
	}
	return out, nil
}

// WriteSummaries writes the per-game threat summary table.
func WriteSummaries(path string, reports []threat.GameReport) error {
	return writeCSV(path, summaryHeader, func(w *csv.Writer) error {
		for _, r := range reports {
			rec := []string{
				r.AppID,
				r.Title,
				strconv.Itoa(r.TotalReviews),
				strconv.Itoa(r.SuspiciousCount),
				fmt.Sprintf("%.2f%%", r.ThreatRate*100),
				strconv.Itoa(r.Totals.Links),
				strconv.Itoa(r.Totals.Keywords),
				strconv.Itoa(r.Totals.Contacts),
				fmt.Sprintf("%.1f", r.AvgHelpful),
				strconv.Itoa(r.ChineseReviews),
				strconv.Itoa(r.EnglishReviews),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadSummaryRows reads the summary table back as raw positional rows for
// reporting; the percentage column stays a string on purpose.
func ReadSummaryRows(path string) ([][]string, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records = records[1:]
	}
	return records, nil
}

// WriteDetails flattens each report's suspicious reviews into one row apiece.
func WriteDetails(path string, reports []threat.GameReport) error {
	return writeCSV(path, detailHeader, func(w *csv.Writer) error {
		for _, r := range reports {
			for _, d := range r.Details {
				rec := []string{
					r.AppID,
					r.Title,
					strconv.Itoa(d.Index),
					d.Content,
					strconv.Itoa(d.Page),
					strconv.Itoa(d.Helpful),
					d.Language,
					strconv.FormatBool(d.Profile.Links > 0),
					strconv.FormatBool(d.Profile.Keywords > 0),
					strconv.FormatBool(d.Profile.Contacts > 0),
					strconv.Itoa(d.Profile.Links),
					strconv.Itoa(d.Profile.Keywords),
					strconv.Itoa(d.Profile.Contacts),
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeCSV(path string, header []string, body func(w *csv.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := body(w); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func readCSV(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.TrimPrefix(string(raw), bom)

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
