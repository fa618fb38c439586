// Package optimize builds strategy prompts, sends them to an LLM, and parses
// the rewritten candidate prompts out of the free-text response.
package optimize

import (
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenizerModel is the model whose BPE vocabulary backs token estimates.
const TokenizerModel = "gpt-4"

// fallbackTokensPerWord approximates subword tokens per whitespace word.
const fallbackTokensPerWord = 1.5

// Encoder is the subset of a BPE tokenizer used for estimates.
type Encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// EncoderLoader produces the primary tokenizer. It is called at most once per Estimator.
type EncoderLoader func() (Encoder, error)

// TiktokenLoader loads the tiktoken vocabulary for model.
// The first load may fetch the vocabulary over the network; set
// TIKTOKEN_CACHE_DIR to keep it on disk between runs.
func TiktokenLoader(model string) EncoderLoader {
	return func() (Encoder, error) {
		return tiktoken.EncodingForModel(model)
	}
}

// UnavailableLoader is an EncoderLoader that never yields a tokenizer, so every
// estimate uses the word-count approximation.
func UnavailableLoader() (Encoder, error) {
	return nil, errTokenizerUnavailable
}

var errTokenizerUnavailable = errors.New("tokenizer unavailable")

// Estimator estimates LLM token counts. It is safe for concurrent use.
type Estimator struct {
	load EncoderLoader
	once sync.Once
	enc  Encoder
}

// NewEstimator creates an estimator backed by the tokenizer load returns.
// If load fails, the estimator silently falls back to ApproximateTokens.
func NewEstimator(load EncoderLoader) *Estimator {
	return &Estimator{load: load}
}

var defaultEstimator = NewEstimator(TiktokenLoader(TokenizerModel))

// DefaultEstimator returns the shared gpt-4 tokenizer estimator.
func DefaultEstimator() *Estimator {
	return defaultEstimator
}

// CountTokens estimates the token count of text with the default estimator.
func CountTokens(text string) int {
	return defaultEstimator.Estimate(text)
}

// Estimate returns the token count of text. It never fails: any tokenizer
// error or panic yields the word-count approximation instead.
func (e *Estimator) Estimate(text string) (n int) {
	enc := e.encoder()
	if enc == nil {
		return ApproximateTokens(text)
	}
	defer func() {
		if recover() != nil {
			n = ApproximateTokens(text)
		}
	}()
	return len(enc.Encode(text, nil, nil))
}

func (e *Estimator) encoder() Encoder {
	e.once.Do(func() {
		if e.load == nil {
			return
		}
		defer func() {
			if recover() != nil {
				e.enc = nil
			}
		}()
		enc, err := e.load()
		if err != nil {
			return
		}
		e.enc = enc
	})
	return e.enc
}

// ApproximateTokens is round(words * 1.5), where words are split on whitespace.
func ApproximateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * fallbackTokensPerWord))
}

// TokenStats holds token totals for a set of candidates.
type TokenStats struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Total int `json:"total"`
}

// StatsFor summarizes the token estimates of candidates.
func StatsFor(candidates []Candidate) TokenStats {
	var s TokenStats
	for i, c := range candidates {
		if i == 0 || c.TokenEstimate < s.Min {
			s.Min = c.TokenEstimate
		}
		if c.TokenEstimate > s.Max {
			s.Max = c.TokenEstimate
		}
		s.Total += c.TokenEstimate
	}
	return s
}
