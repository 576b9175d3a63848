// Package quality post-checks generated answers and produces an extractive
// fallback when the model's output looks like reassembled fragments rather
// than a real answer.
package quality

import (
	"strings"
	"unicode"
)

// Options holds the rejection thresholds.
type Options struct {
	MinAnswerLength    int
	MaxFragmentMarkers int
	MaxTechnicalRatio  float64
}

// fragmentMarkers are substrings whose repeated presence suggests the model
// stitched together citation fragments instead of answering.
var fragmentMarkers = []string{"...", "[", "]", "et al", "Fig.", "Table"}

const minFallbackSentenceLen = 30

// TooFragmentedMessage is returned when no sentence in the context overlaps
// the question at all.
const TooFragmentedMessage = "The document text appears too fragmented to answer this question reliably. Try rephrasing the question or uploading a clearer PDF."

// fallbackPrefix introduces an extractive answer.
const fallbackPrefix = "I couldn't generate a clean answer from the document, but this passage seems most relevant: "

// Acceptable reports whether a generated answer passes the quality gate.
func Acceptable(answer string, opts Options) bool {
	if opts.MinAnswerLength <= 0 {
		opts.MinAnswerLength = 20
	}
	if opts.MaxFragmentMarkers <= 0 {
		opts.MaxFragmentMarkers = 2
	}
	if opts.MaxTechnicalRatio <= 0 {
		opts.MaxTechnicalRatio = 0.3
	}

	answer = strings.TrimSpace(answer)
	if len(answer) < opts.MinAnswerLength {
		return false
	}

	markers := 0
	for _, m := range fragmentMarkers {
		markers += strings.Count(answer, m)
	}
	if markers > opts.MaxFragmentMarkers {
		return false
	}

	words := strings.Fields(answer)
	if len(words) == 0 {
		return false
	}
	technical := 0
	for _, w := range words {
		if isTechnicalToken(w) {
			technical++
		}
	}
	return float64(technical)/float64(len(words)) <= opts.MaxTechnicalRatio
}

// isTechnicalToken flags words that look like citations, numbers, or long
// technical identifiers rather than prose.
func isTechnicalToken(w string) bool {
	if strings.HasPrefix(w, "[") || strings.Contains(w, "@") || len(w) > 15 {
		return true
	}
	allDigits := true
	for _, r := range w {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	return allDigits && len(w) > 0
}

// ExtractiveFallback picks the context sentence with the highest word
// overlap with the question (minimum 30 characters) and returns it behind
// an explanatory prefix. Zero overlap yields TooFragmentedMessage.
func ExtractiveFallback(question, context string) string {
	qWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(w) >= 3 {
			qWords[w] = struct{}{}
		}
	}

	best := ""
	bestOverlap := 0
	for _, s := range splitSentences(context) {
		if len(s) < minFallbackSentenceLen {
			continue
		}
		ls := strings.ToLower(s)
		overlap := 0
		for w := range qWords {
			if strings.Contains(ls, w) {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = s
		}
	}
	if bestOverlap == 0 {
		return TooFragmentedMessage
	}
	if !strings.HasSuffix(best, ".") {
		best += "."
	}
	return fallbackPrefix + best
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(text[start:i])
			if s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
