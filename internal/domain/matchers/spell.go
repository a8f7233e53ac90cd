package matchers

import (
	"strings"
	"sync"
)

// Correction is the explicit result of a spelling pass. Callers can see
// whether anything was altered instead of relying on silent fall-through.
type Correction struct {
	Text    string
	Changed bool
}

// SpellCorrector performs per-token dictionary-based correction.
// Best-effort by contract: a token with no known correction passes through
// unchanged, and Correct never fails or returns empty for non-empty input.
// Safe for concurrent use: Learn runs on corpus reload while Correct is
// serving requests, so the dictionary is guarded by an RWMutex.
type SpellCorrector struct {
	mu   sync.RWMutex
	freq map[string]int
}

// NewSpellCorrector creates a corrector seeded with a base vocabulary of
// common chat and e-commerce words. Learn extends it from the live corpus.
func NewSpellCorrector() *SpellCorrector {
	c := &SpellCorrector{freq: make(map[string]int, 512)}
	for _, w := range baseVocabulary {
		c.freq[w]++
	}
	return c
}

// Learn adds the normalized tokens of the given texts to the dictionary.
// Called with corpus questions and trigger phrases so corrections steer
// toward words the matchers can actually act on.
func (c *SpellCorrector) Learn(texts ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range texts {
		for _, tok := range strings.Fields(Normalize(t)) {
			if len(tok) > 1 {
				c.freq[tok]++
			}
		}
	}
}

// Correct replaces each whitespace-delimited token with its best dictionary
// correction, leaving unknown-but-uncorrectable tokens as they are.
func (c *SpellCorrector) Correct(text string) Correction {
	if strings.TrimSpace(text) == "" {
		return Correction{Text: text}
	}

	tokens := strings.Fields(text)
	changed := false
	for i, tok := range tokens {
		fixed := c.correctToken(tok)
		if fixed != tok {
			tokens[i] = fixed
			changed = true
		}
	}
	return Correction{Text: strings.Join(tokens, " "), Changed: changed}
}

// correctToken returns the best candidate for a single token.
func (c *SpellCorrector) correctToken(tok string) string {
	// Short tokens and anything with digits are left alone: edit-distance
	// candidates for them are mostly noise ("hi" -> "his", order numbers).
	if len(tok) <= 2 || containsDigit(tok) {
		return tok
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.freq[tok] > 0 {
		return tok
	}

	best := tok
	bestFreq := 0
	for _, cand := range edits1(tok) {
		if f := c.freq[cand]; f > bestFreq {
			best, bestFreq = cand, f
		}
	}
	return best
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// edits1 generates all strings one edit away from word
// (deletes, transposes, replaces, inserts).
func edits1(word string) []string {
	out := make([]string, 0, 54*len(word)+26)
	for i := 0; i <= len(word); i++ {
		left, right := word[:i], word[i:]
		if len(right) > 0 {
			out = append(out, left+right[1:]) // delete
		}
		if len(right) > 1 {
			out = append(out, left+string(right[1])+string(right[0])+right[2:]) // transpose
		}
		for _, ch := range letters {
			if len(right) > 0 {
				out = append(out, left+string(ch)+right[1:]) // replace
			}
			out = append(out, left+string(ch)+right) // insert
		}
	}
	return out
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// baseVocabulary keeps the corrector useful before any corpus is learned.
var baseVocabulary = []string{
	"hello", "hey", "good", "morning", "afternoon", "evening", "night",
	"how", "are", "you", "what", "whats", "where", "when", "why", "who",
	"the", "and", "for", "not", "can", "cant", "could", "would", "want",
	"need", "help", "please", "thanks", "thank", "bye", "goodbye", "see",
	"stop", "exit", "sad", "bad", "day", "name", "made", "created",
	"order", "orders", "delivery", "deliver", "shipping", "shipped",
	"track", "tracking", "status", "return", "returns", "refund",
	"refunded", "replace", "replacement", "exchange", "defective",
	"damaged", "wrong", "item", "product", "products", "warranty",
	"guarantee", "claim", "payment", "payments", "transaction", "card",
	"upi", "wallet", "failed", "money", "cancel", "cancellation",
	"cancelled", "discount", "offer", "coupon", "promo", "code", "sale",
	"password", "login", "account", "forgot", "reset", "stock",
	"available", "notify", "address", "change", "update", "edit",
	"contact", "support", "complaint", "details", "specifications",
	"price", "much", "time", "charge", "delayed", "policy", "store",
	"purchase", "buy", "checkout", "cart", "invoice", "bill",
}
