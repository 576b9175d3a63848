// Package retrieval selects the chunks most likely to contain the answer to
// a question, using keyword overlap, a static term-association table, and
// score thresholds. The heuristic is deliberately precision-biased: it
// prefers returning nothing over returning weakly related chunks, so false
// negatives are common and accepted.
package retrieval

import (
	"sort"
	"strings"
	"unicode"

	"docchat/internal/docstore"
)

// Scoring weights and qualification thresholds. Changing these changes
// which chunks the service answers from; tests pin the current behavior.
const (
	exactPhraseScore = 10
	keyTermScore     = 2

	minSemanticWithTerm = 2 // semantic hits needed when one key term matched
	minKeyTermMatches   = 2 // key-term matches that qualify on their own
	minSemanticAlone    = 3 // semantic hits that qualify on their own
)

// Options controls result count and the score floor.
type Options struct {
	TopK     int
	MinScore int
}

// Engine scores chunks against a question. Stateless; safe for concurrent use.
type Engine struct {
	opts Options
}

// ScoredChunk pairs a chunk with its score and the key terms that matched.
// It exists only for the duration of one retrieval call.
type ScoredChunk struct {
	Chunk   docstore.Chunk
	Score   int
	Matched []string
}

// New returns an engine with defaults applied (top 3, score floor 2).
func New(opts Options) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.MinScore <= 0 {
		opts.MinScore = 2
	}
	return &Engine{opts: opts}
}

// KeyTerms lower-cases and tokenizes the question, strips punctuation from
// word edges, and removes stop words. Order of first appearance is kept and
// duplicates are dropped, so downstream scoring is deterministic.
func KeyTerms(question string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if w == "" {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}

// Retrieve returns the top-K qualifying chunks ranked by score descending.
// Ties keep original chunk order (stable sort). An empty result means no
// chunk cleared the qualification rules, or the question had no key terms.
func (e *Engine) Retrieve(question string, chunks []docstore.Chunk) []ScoredChunk {
	terms := KeyTerms(question)
	if len(terms) == 0 {
		return nil
	}
	phrase := strings.ToLower(strings.TrimSpace(question))

	var qualified []ScoredChunk
	for _, c := range chunks {
		sc, ok := scoreChunk(c, phrase, terms)
		if ok {
			qualified = append(qualified, sc)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	var out []ScoredChunk
	for _, sc := range qualified {
		if sc.Score < e.opts.MinScore {
			break // sorted descending, nothing below clears the floor
		}
		out = append(out, sc)
		if len(out) == e.opts.TopK {
			break
		}
	}
	return out
}

// scoreChunk computes the three partial scores for one chunk and applies
// the qualification rules:
//
//	exact-phrase match, OR
//	one key term plus at least two semantic hits, OR
//	at least two key terms, OR
//	at least three semantic hits.
func scoreChunk(c docstore.Chunk, phrase string, terms []string) (ScoredChunk, bool) {
	text := strings.ToLower(c.Text)

	exact := 0
	if phrase != "" && strings.Contains(text, phrase) {
		exact = exactPhraseScore
	}

	termScore := 0
	var matched []string
	for _, t := range terms {
		if len(t) < 2 {
			continue
		}
		if strings.Contains(text, t) {
			termScore += keyTermScore
			matched = append(matched, t)
		}
	}

	semantic := 0
	for _, t := range terms {
		for _, assoc := range semanticMap[t] {
			if strings.Contains(text, assoc) {
				semantic++
			}
		}
	}

	total := exact + termScore + semantic
	qualifies := exact > 0 ||
		(len(matched) >= 1 && semantic >= minSemanticWithTerm) ||
		len(matched) >= minKeyTermMatches ||
		semantic >= minSemanticAlone
	if !qualifies {
		return ScoredChunk{}, false
	}
	return ScoredChunk{Chunk: c, Score: total, Matched: matched}, true
}
