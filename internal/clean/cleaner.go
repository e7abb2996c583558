// Package clean normalizes, validates and deduplicates raw product rows.
// It consumes the raw CSV the extraction stage writes and produces the
// cleaned CSV the analysis and reporting stages read.
package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"steamscan/internal/dataio"
	"steamscan/internal/models"
)

// Summary reports what happened to each input row. Removed counts are always
// surfaced to the user; silently dropping data is not an option.
type Summary struct {
	Total      int
	Kept       int
	Invalid    int
	Duplicates int
}

var (
	spaceRuns  = regexp.MustCompile(`\s+`)
	trademarks = regexp.MustCompile(`[™®©]`)
	firstPrice = regexp.MustCompile(`\d+\.?\d*`)
	allDigits  = regexp.MustCompile(`^\d+$`)
)

// CleanFile reads the raw product table, cleans every row, drops invalid and
// duplicate ones and writes the cleaned table.
func CleanFile(inPath, outPath string) (Summary, error) {
	rows, err := dataio.ReadProducts(inPath)
	if err != nil {
		return Summary{}, fmt.Errorf("read raw products: %w", err)
	}

	summary := Summary{Total: len(rows)}

	var cleaned []models.ProductRecord
	for _, row := range rows {
		rec := Record(row)
		if !isValid(rec) {
			summary.Invalid++
			continue
		}
		cleaned = append(cleaned, rec)
	}

	seen := make(map[string]struct{}, len(cleaned))
	var unique []models.ProductRecord
	for _, rec := range cleaned {
		if _, ok := seen[rec.AppID]; ok {
			summary.Duplicates++
			continue
		}
		seen[rec.AppID] = struct{}{}
		unique = append(unique, rec)
	}
	summary.Kept = len(unique)

	if err := dataio.WriteProducts(outPath, unique); err != nil {
		return summary, fmt.Errorf("write cleaned products: %w", err)
	}
	return summary, nil
}

// Record cleans every field of one row.
func Record(row models.ProductRecord) models.ProductRecord {
	return models.ProductRecord{
		AppID:         strings.TrimSpace(row.AppID),
		Title:         Title(row.Title),
		Released:      strings.TrimSpace(row.Released),
		CurrentPrice:  formatPrice(Price(row.CurrentPrice)),
		OriginalPrice: formatPrice(Price(row.OriginalPrice)),
		Tags:          Tags(row.Tags),
	}
}

// Title trims, collapses interior whitespace and strips trademark symbols.
func Title(title string) string {
	title = spaceRuns.ReplaceAllString(strings.TrimSpace(title), " ")
	return trademarks.ReplaceAllString(title, "")
}

// Price resolves a textual price to a number. Each field holds at most one
// price, so the first numeric group wins; anything unparseable is 0.
func Price(price string) float64 {
	price = strings.TrimSpace(price)
	if price == "" {
		return 0
	}
	m := firstPrice.FindString(price)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Tags normalizes alternative separators to commas and deduplicates,
// preserving first-seen order.
func Tags(tags string) string {
	tags = strings.TrimSpace(tags)
	if tags == "" {
		return ""
	}
	for _, sep := range []string{"，", "、", "|", ";"} {
		tags = strings.ReplaceAll(tags, sep, ",")
	}

	seen := make(map[string]struct{})
	var out []string
	for _, t := range strings.Split(tags, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return strings.Join(out, ", ")
}

// isValid keeps rows with a numeric app id and a title. Bundles (empty id)
// and rows the extractor could not title don't survive cleaning.
func isValid(rec models.ProductRecord) bool {
	return allDigits.MatchString(rec.AppID) && rec.Title != ""
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
