package matchers

import "strings"

// Bucket is one topic in a keyword table: an ordered set of trigger
// phrases mapped to a single canned response.
type Bucket struct {
	Name     string
	Triggers []string
	Response string
}

// KeywordMatcher evaluates buckets in declaration order and returns the
// first bucket whose trigger appears as a substring of the (normalized)
// input. Ordering is the only overlap-resolution mechanism.
type KeywordMatcher struct {
	buckets []Bucket
}

// NewKeywordMatcher creates a matcher over an ordered bucket table.
func NewKeywordMatcher(buckets []Bucket) *KeywordMatcher {
	return &KeywordMatcher{buckets: buckets}
}

// Match returns the first matching bucket's response and true, or "" and
// false if no bucket matches. Containment is plain substring, not
// whole-word: "sadness" matches the trigger "sad".
func (m *KeywordMatcher) Match(text string) (string, bool) {
	text = Normalize(text)
	if text == "" {
		return "", false
	}
	for _, b := range m.buckets {
		for _, trigger := range b.Triggers {
			if containsPhrase(text, trigger) {
				return b.Response, true
			}
		}
	}
	return "", false
}

// Buckets exposes the table for dictionary seeding.
func (m *KeywordMatcher) Buckets() []Bucket {
	return m.buckets
}

func containsPhrase(text, phrase string) bool {
	return phrase != "" && strings.Contains(text, phrase)
}

// NewGreetingMatcher covers the idle/greeting case. Checked before every
// other matcher so "hi" never falls through to policy buckets.
func NewGreetingMatcher() *KeywordMatcher {
	return NewKeywordMatcher([]Bucket{
		{
			Name: "mood",
			Triggers: []string{
				"not good", "sad", "bad day",
			},
			Response: "Oh no, sorry to hear that. Want to tell me what happened, or can I help you with an order in the meantime?",
		},
		{
			Name: "how-are-you",
			Triggers: []string{
				"how are you",
			},
			Response: "I'm doing great, thanks for asking! How about you?",
		},
		{
			Name: "whats-up",
			Triggers: []string{
				"whats up", "whatsup", "wassup",
			},
			Response: "Just waiting for your next question. What can I do for you?",
		},
		{
			Name: "hello",
			Triggers: []string{
				"hi", "hello", "hey", "good morning", "good afternoon",
				"good evening", "good night",
			},
			Response: "Good day! How can I help you today?",
		},
	})
}

// NewRuleMatcher is the first-line policy table. Bucket order is a fixed
// priority: farewell before identity before warranty before returns
// before delivery before payment before cancellation.
func NewRuleMatcher() *KeywordMatcher {
	return NewKeywordMatcher([]Bucket{
		{
			Name: "farewell",
			Triggers: []string{
				"bye", "goodbye", "exit", "stop", "see you", "thank you",
			},
			Response: "Goodbye! Hope to chat with you again soon.",
		},
		{
			Name: "identity",
			Triggers: []string{
				"who are you", "what are you", "your name", "who made you",
				"who created you",
			},
			Response: "I'm the store's support assistant. I can help with orders, delivery, returns, payments and more.",
		},
		{
			Name: "warranty",
			Triggers: []string{
				"warranty", "guarantee",
			},
			Response: "Most products come with a standard manufacturer warranty. You can view warranty details on the product page or contact support for warranty claims.",
		},
		{
			Name: "returns",
			Triggers: []string{
				"return", "refund", "replace",
			},
			Response: "You can request a return or refund within 7 days of delivery. Visit 'My Orders', select the item and choose 'Return/Refund'.",
		},
		{
			Name: "delivery",
			Triggers: []string{
				"delivery", "shipping", "track order", "status", "tracking",
			},
			Response: "You can track your order via the 'Track Order' section. Delivery usually takes 3-5 business days.",
		},
		{
			Name: "payment",
			Triggers: []string{
				"payment", "transaction", "upi", "card",
			},
			Response: "We support multiple payment options: UPI, cards and wallets. If a payment failed, the amount is auto-refunded within 3-5 days.",
		},
		{
			Name: "cancellation",
			Triggers: []string{
				"cancel order", "order cancel", "cancel my order",
			},
			Response: "You can cancel an order before it ships. Go to 'My Orders', select the order and tap 'Cancel'.",
		},
	})
}

// NewBusinessMatcher is the second, more detailed policy table. Only
// consulted when the rule matcher declined, so rule buckets win any
// overlap by ordering alone.
func NewBusinessMatcher() *KeywordMatcher {
	return NewKeywordMatcher([]Bucket{
		{
			Name: "refund-policy",
			Triggers: []string{
				"refund policy", "return policy", "how to return", "initiate return",
			},
			Response: "Our return and refund policy allows returns within 7-10 days. Go to 'My Orders', select your item and click 'Return/Replace'.",
		},
		{
			Name: "delivery-detail",
			Triggers: []string{
				"delivery time", "track my order", "shipping charge", "order delayed",
			},
			Response: "You can track your order anytime from 'My Orders'. Delivery usually takes 3-5 business days depending on your location.",
		},
		{
			Name: "cancellation-detail",
			Triggers: []string{
				"cancel my order", "order cancellation", "cancel request",
			},
			Response: "You can cancel your order before it's shipped. Go to 'My Orders', select the product and tap 'Cancel'.",
		},
		{
			Name: "replacement",
			Triggers: []string{
				"exchange", "defective", "damaged", "wrong item",
			},
			Response: "Sorry about that. You can request a replacement via 'My Orders' under 'Return/Replace'.",
		},
		{
			Name: "payment-failure",
			Triggers: []string{
				"payment failed", "money not refunded", "transaction issue",
			},
			Response: "If your payment failed, wait 2-3 business days for the auto-refund. If it's delayed, contact your bank with the transaction ID.",
		},
		{
			Name: "discounts",
			Triggers: []string{
				"discount", "offer", "coupon", "promo code", "sale",
			},
			Response: "You can find all current offers in the 'Deals & Offers' section. Apply a valid promo code during checkout to save more.",
		},
		{
			Name: "login",
			Triggers: []string{
				"forgot password", "cant login", "login issue",
			},
			Response: "If you forgot your password, click 'Forgot Password' on the login page to reset it.",
		},
		{
			Name: "stock",
			Triggers: []string{
				"stock", "out of stock", "when available",
			},
			Response: "Enable 'Notify Me' on the product page and we'll alert you once the item is back in stock.",
		},
		{
			Name: "address",
			Triggers: []string{
				"change address", "edit order", "update address",
			},
			Response: "You can update shipping details before your order ships. Go to 'My Orders', select the order and choose 'Edit Address'.",
		},
		{
			Name: "support",
			Triggers: []string{
				"contact", "help", "support", "complaint",
			},
			Response: "Our support team is available 24x7. Reach us via live chat or the Help Center.",
		},
		{
			Name: "product-detail",
			Triggers: []string{
				"product details", "specifications", "price of", "how much",
			},
			Response: "All product details, prices and specifications are listed on the product page.",
		},
	})
}
