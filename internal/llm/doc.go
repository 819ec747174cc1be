// Package llm provides the AI-analysis client used to propose subscription
// candidates from aggregated sender evidence. It supports OpenAI-compatible
// providers with rate limiting, and owns the tolerant parsing of the
// loosely-typed JSON candidate records the model returns.
package llm
