// Package threat flags review text that tries to lure readers off the
// storefront: external links, fraud keywords and contact details. Matching is
// heuristic by design — substring and regex tables, no language model.
package threat

import "strings"

// Profile counts pattern matches in one text, per family. The families are
// evaluated independently; a single text can trigger all three.
type Profile struct {
	Links    int      `json:"links"`
	Keywords int      `json:"keywords"`
	Contacts int      `json:"contacts"`
	Found    []string `json:"found_items,omitempty"`
}

// Suspicious reports whether any family matched.
func (p Profile) Suspicious() bool {
	return p.Links > 0 || p.Keywords > 0 || p.Contacts > 0
}

// Add accumulates another profile's counts (matched snippets are not carried
// over; aggregates only need the numbers).
func (p *Profile) Add(o Profile) {
	p.Links += o.Links
	p.Keywords += o.Keywords
	p.Contacts += o.Contacts
}

// Detect scans text against the rule tables. Pure function: empty text yields
// the zero Profile. Link and contact matches are counted per occurrence,
// keywords once per keyword present.
func (r Rules) Detect(text string) Profile {
	var p Profile
	if text == "" {
		return p
	}

	for _, expr := range r.LinkPatterns {
		matches := expr.FindAllString(text, -1)
		p.Links += len(matches)
		p.Found = append(p.Found, matches...)
	}

	lower := strings.ToLower(text)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			p.Keywords++
			p.Found = append(p.Found, kw)
		}
	}

	for _, expr := range r.ContactPatterns {
		matches := expr.FindAllString(text, -1)
		p.Contacts += len(matches)
		p.Found = append(p.Found, matches...)
	}

	return p
}
