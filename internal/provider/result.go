// Package provider holds the request and result types shared by the external
// AI providers.
package provider

// ChatRequest is a single-turn chat completion request.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

