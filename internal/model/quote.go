package model

// QuoteSource tells where a GeneratedQuote came from.
type QuoteSource string

const (
	QuoteSourceGenerated QuoteSource = "generated"
	QuoteSourceFallback  QuoteSource = "fallback"
)

// GeneratedQuote is the text embedded in the acknowledgment email.
type GeneratedQuote struct {
	Text   string
	Source QuoteSource
}

// IsFallback reports whether the quote is the fixed fallback text.
func (q GeneratedQuote) IsFallback() bool {
	return q.Source == QuoteSourceFallback
}
