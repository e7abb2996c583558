package cmd

import (
	"fmt"
	"io"
	"strings"

	"steamscan/internal/threat"
)

// printGameReport prints one analysis report in a human-friendly layout.
func printGameReport(w io.Writer, r *threat.GameReport) {
	title := r.Title
	if title == "" {
		title = "app " + r.AppID
	}
	fmt.Fprintf(w, "%s (appid %s)\n", title, r.AppID)
	fmt.Fprintf(w, "  reviews: %d  (chinese %d, english %d)\n",
		r.TotalReviews, r.ChineseReviews, r.EnglishReviews)
	fmt.Fprintf(w, "  suspicious: %d (%.1f%%)  avg helpful: %.1f\n",
		r.SuspiciousCount, r.ThreatRate*100, r.AvgHelpful)
	fmt.Fprintf(w, "  signals: %d links, %d keywords, %d contacts\n",
		r.Totals.Links, r.Totals.Keywords, r.Totals.Contacts)

	if len(r.Details) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, d := range r.Details {
		fmt.Fprintf(w, "  #%d [page %d, %s, %d helpful] %s\n",
			d.Index, d.Page, d.Language, d.Helpful, flagSummary(d.Profile))
		fmt.Fprintf(w, "     %s\n", d.Content)
	}
}

// flagSummary renders which signal classes fired for one review.
func flagSummary(p threat.Profile) string {
	var flags []string
	if p.Links > 0 {
		flags = append(flags, fmt.Sprintf("links:%d", p.Links))
	}
	if p.Keywords > 0 {
		flags = append(flags, fmt.Sprintf("keywords:%d", p.Keywords))
	}
	if p.Contacts > 0 {
		flags = append(flags, fmt.Sprintf("contacts:%d", p.Contacts))
	}
	if len(flags) == 0 {
		return "clean"
	}
	return strings.Join(flags, " ")
}
