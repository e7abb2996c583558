package models

// Candidate is one row parsed from a storefront search page, pre-validation.
// Bundles and packages have no app id; nothing is filtered at this stage.
type Candidate struct {
	AppID     string `json:"appid"`
	Title     string `json:"title"`
	Released  string `json:"released"`
	PriceText string `json:"price_text"`
	TagsText  string `json:"tags_text"`
}

// PriceStatus tags the outcome of a structured price lookup so callers can
// tell "legitimately has no price" apart from "could not determine".
type PriceStatus int

const (
	// PriceResolved means the endpoint returned a usable price overview.
	PriceResolved PriceStatus = iota
	// PriceNoData means the endpoint answered but reported no price
	// (success=false, or a product without a price overview, e.g. free).
	PriceNoData
	// PriceFailed means a transport, status or decode error occurred.
	PriceFailed
)

func (s PriceStatus) String() string {
	switch s {
	case PriceResolved:
		return "resolved"
	case PriceNoData:
		return "no-data"
	case PriceFailed:
		return "failed"
	}
	return "unknown"
}

// PriceQuote is a structured price from the pricing endpoint, in full
// currency units. Nil pointers mean unknown; zero is a valid free price.
type PriceQuote struct {
	Currency        string   `json:"currency,omitempty"`
	Initial         *float64 `json:"initial,omitempty"`
	Final           *float64 `json:"final,omitempty"`
	DiscountPercent int      `json:"discount_percent,omitempty"`
}

// ProductRecord is the canonical merged output row. Prices stay textual:
// the heuristic fallback may leave the raw snippet in CurrentPrice when it
// cannot parse a number, which the cleaner later resolves.
type ProductRecord struct {
	AppID         string `json:"appid"`
	Title         string `json:"title"`
	Released      string `json:"released"`
	CurrentPrice  string `json:"current_price"`
	OriginalPrice string `json:"original_price"`
	Tags          string `json:"tags"`
}

// Review language labels, after the columns the analysis tables use.
const (
	LangChinese = "chinese"
	LangEnglish = "english"
	LangOther   = "other"
)

// Review is one fetched review with its page of origin.
type Review struct {
	Content  string `json:"content"`
	Page     int    `json:"page"`
	Helpful  int    `json:"helpful"`
	Language string `json:"language"`
}

// GameRef identifies a game found through the storefront search.
type GameRef struct {
	AppID string `json:"appid"`
	Title string `json:"title"`
}
