// Package report prints console summaries of the cleaned dataset and the
// review analysis. Charts are left to external tooling; the input files are
// the contract.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"steamscan/internal/dataio"
	"steamscan/internal/models"
)

// Overview renders the game statistics and, when present, the review
// analysis summary. A missing cleaned table is an error; a missing summary
// table just omits that section.
func Overview(w io.Writer, cleanedPath, summaryPath string) error {
	records, err := dataio.ReadProducts(cleanedPath)
	if err != nil {
		return fmt.Errorf("read cleaned table: %w", err)
	}

	gameStats(w, records)
	topGames(w, records, 10)

	rows, err := dataio.ReadSummaryRows(summaryPath)
	if err != nil {
		fmt.Fprintf(w, "\nno review analysis yet (%s not found)\n", summaryPath)
		return nil
	}
	analysisStats(w, rows)
	return nil
}

func gameStats(w io.Writer, records []models.ProductRecord) {
	total := len(records)
	paid, free := 0, 0
	var sum, min, max float64
	for _, r := range records {
		price, err := strconv.ParseFloat(r.OriginalPrice, 64)
		if err != nil {
			continue
		}
		if price == 0 {
			free++
			continue
		}
		paid++
		sum += price
		if min == 0 || price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Game statistics")
	t.AppendRow(table.Row{"games", total})
	t.AppendRow(table.Row{"paid", fmt.Sprintf("%d (%s)", paid, percent(paid, total))})
	t.AppendRow(table.Row{"free", fmt.Sprintf("%d (%s)", free, percent(free, total))})
	if paid > 0 {
		t.AppendRow(table.Row{"avg price", fmt.Sprintf("%.2f", sum/float64(paid))})
		t.AppendRow(table.Row{"price range", fmt.Sprintf("%.2f - %.2f", min, max)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func topGames(w io.Writer, records []models.ProductRecord, limit int) {
	if len(records) > limit {
		records = records[:limit]
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Top sellers")
	t.AppendHeader(table.Row{"#", "Title", "Price", "Tags"})
	for i, r := range records {
		price := r.CurrentPrice
		if price == "0" {
			price = "free"
		}
		t.AppendRow(table.Row{i + 1, truncateCell(r.Title, 40), price, truncateCell(r.Tags, 40)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func analysisStats(w io.Writer, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Review analysis")
	t.AppendHeader(table.Row{"Title", "Reviews", "Suspicious", "Rate", "Links", "Keywords", "Contacts"})

	totalReviews, suspicious := 0, 0
	for _, row := range rows {
		if len(row) < 8 {
			continue
		}
		totalReviews += atoi(row[2])
		suspicious += atoi(row[3])
		t.AppendRow(table.Row{truncateCell(row[1], 40), row[2], row[3], row[4], row[5], row[6], row[7]})
	}
	t.AppendFooter(table.Row{"total", totalReviews, suspicious, percent(suspicious, totalReviews), "", "", ""})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func truncateCell(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
