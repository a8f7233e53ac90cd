// Package usecases - respond.go is the response-selection pipeline.
package usecases

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/datadecoders/shopbot-go/internal/domain/entities"
	"github.com/datadecoders/shopbot-go/internal/domain/matchers"
)

// Canned replies for the pipeline's terminal states.
const (
	emptyInputReply  = "Please type something so I can help you."
	fallbackReply    = "Hmm, I'm not sure about that yet. Could you rephrase or ask something else?"
	unavailableReply = "I can answer basic questions right now, but my FAQ search is temporarily unavailable. Please try again later or contact support."
)

// DefaultSimilarityThreshold is the cosine-similarity floor for accepting
// a semantic match. Below it the pipeline falls through to the fallback.
const DefaultSimilarityThreshold = 0.55

// RespondUseCase cascades a query through the greeting, rule, business and
// semantic matchers in strict order; the first non-empty result wins.
type RespondUseCase struct {
	corrector *matchers.SpellCorrector
	greeting  *matchers.KeywordMatcher
	rules     *matchers.KeywordMatcher
	business  *matchers.KeywordMatcher
	index     *IndexUseCase
	threshold float64
	log       zerolog.Logger
}

// NewRespondUseCase creates the pipeline with the standard matcher tables.
// The spelling dictionary is seeded from every trigger phrase so
// corrections steer toward words the matchers recognize.
func NewRespondUseCase(index *IndexUseCase, threshold float64, log zerolog.Logger) *RespondUseCase {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	uc := &RespondUseCase{
		corrector: matchers.NewSpellCorrector(),
		greeting:  matchers.NewGreetingMatcher(),
		rules:     matchers.NewRuleMatcher(),
		business:  matchers.NewBusinessMatcher(),
		index:     index,
		threshold: threshold,
		log:       log,
	}

	for _, m := range []*matchers.KeywordMatcher{uc.greeting, uc.rules, uc.business} {
		for _, b := range m.Buckets() {
			uc.corrector.Learn(b.Triggers...)
		}
	}
	return uc
}

// LearnCorpus extends the spelling dictionary from corpus questions.
// Called whenever a corpus is loaded or reloaded.
func (uc *RespondUseCase) LearnCorpus(corpus *entities.Corpus) {
	if corpus == nil {
		return
	}
	uc.corrector.Learn(corpus.Questions()...)
}

// Respond runs one query through the full pipeline. Total by contract:
// it never fails and always returns a non-empty reply.
func (uc *RespondUseCase) Respond(ctx context.Context, raw string) entities.MatchResult {
	text := matchers.Normalize(raw)
	if text == "" {
		return entities.MatchResult{Reply: emptyInputReply, Source: entities.SourceFallback}
	}

	corrected := uc.corrector.Correct(text)
	if corrected.Changed {
		uc.log.Debug().Str("from", text).Str("to", corrected.Text).Msg("spelling corrected")
	}
	text = corrected.Text

	if reply, ok := uc.greeting.Match(text); ok {
		return entities.MatchResult{Reply: reply, Source: entities.SourceGreeting}
	}
	if reply, ok := uc.rules.Match(text); ok {
		return entities.MatchResult{Reply: reply, Source: entities.SourceRule}
	}
	if reply, ok := uc.business.Match(text); ok {
		return entities.MatchResult{Reply: reply, Source: entities.SourceBusiness}
	}

	if uc.index == nil || !uc.index.Available() {
		return entities.MatchResult{Reply: unavailableReply, Source: entities.SourceUnavailable}
	}

	entry, score, err := uc.index.Search(ctx, text)
	if err != nil {
		// Embedding service down mid-flight degrades the same way as a
		// missing index: the reply is still delivered.
		uc.log.Warn().Err(err).Msg("semantic search failed")
		return entities.MatchResult{Reply: unavailableReply, Source: entities.SourceUnavailable}
	}
	if score >= uc.threshold {
		return entities.MatchResult{Reply: entry.Answer, Source: entities.SourceSemantic, Score: score}
	}

	uc.log.Debug().Float64("score", score).Float64("threshold", uc.threshold).Msg("no confident semantic match")
	return entities.MatchResult{Reply: fallbackReply, Source: entities.SourceFallback, Score: score}
}
