package httputil

import "net/http"

// BrowserHeaders returns common browser-like headers. The storefront serves
// reduced markup to clients without them.
func BrowserHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8")
	h.Set("Accept-Encoding", "gzip, br")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	return h
}

// APIHeaders returns headers for the JSON pricing endpoint.
func APIHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip")
	return h
}
