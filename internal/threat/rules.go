package threat

import "regexp"

// Rules is the data the classifier matches against. Keeping patterns and
// keywords as injected tables lets rule updates and table-driven tests happen
// without touching the matching code.
type Rules struct {
	// LinkPatterns match external URLs and bare domain references.
	LinkPatterns []*regexp.Regexp
	// Keywords are matched by case-insensitive substring containment, each
	// counted at most once per text.
	Keywords []string
	// ContactPatterns match phone numbers and email addresses.
	ContactPatterns []*regexp.Regexp
}

// DefaultRules targets gaming-fraud solicitation as it shows up in storefront
// reviews: cheat/boosting services, giveaway lures and contact funnels, in
// both Chinese and English.
func DefaultRules() Rules {
	return Rules{
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)https?://[^\s]+`),
			regexp.MustCompile(`(?i)www\.[^\s]+\.[a-zA-Z]{2,}`),
		},
		Keywords: []string{
			// cheating and cracked clients
			"外挂", "挂机", "脚本", "破解", "免费获得", "代挂",
			"hack", "cheat", "bot", "script", "crack",
			// giveaway and lure phrasing
			"免费送", "限时优惠", "点击领取", "立即获得",
			"稀有皮肤", "免费皮肤", "开箱", "抽奖",
			"free giveaway", "limited offer", "claim now",
			// boosting and resale services
			"代练", "低价出售", "便宜卖", "代打",
			// contact solicitation
			"加群", "进群", "关注", "私聊", "联系我",
			"add me", "contact me", "join group",
		},
		ContactPatterns: []*regexp.Regexp{
			// CN mobile numbers: 11 digits starting 13-19
			regexp.MustCompile(`1[3-9]\d{9}`),
			regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		},
	}
}
