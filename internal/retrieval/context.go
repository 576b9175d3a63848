package retrieval

import (
	"sort"
	"strings"
	"unicode"
)

const (
	minContextChunkLen = 50
	maxContextChunks   = 3

	// A trailing period inside the final 30% of a chunk is taken as the
	// last complete sentence boundary.
	trailingCutRatio = 0.7
	// A first sentence shorter than this is treated as a fragment.
	minLeadSentenceLen = 10
)

// AssembleContext turns already-selected chunks into a single prompt-ready
// string. Chunks are re-ranked by total key-term occurrence count (not just
// presence), trimmed of likely sentence fragments at both ends, and joined
// with blank lines. Chunks under 50 characters after trimming are dropped.
func AssembleContext(question string, selected []ScoredChunk) string {
	terms := KeyTerms(question)

	type ranked struct {
		text string
		occ  int
	}
	items := make([]ranked, 0, len(selected))
	for _, sc := range selected {
		text := strings.ToLower(sc.Chunk.Text)
		occ := 0
		for _, t := range terms {
			occ += strings.Count(text, t)
		}
		items = append(items, ranked{text: sc.Chunk.Text, occ: occ})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].occ > items[j].occ
	})

	var parts []string
	for _, it := range items {
		cleaned := trimFragments(it.text)
		if len(cleaned) < minContextChunkLen {
			continue
		}
		parts = append(parts, cleaned)
		if len(parts) == maxContextChunks {
			break
		}
	}
	return strings.Join(parts, "\n\n")
}

// trimFragments removes a likely-incomplete leading sentence and cuts a
// trailing incomplete sentence back to the last period when that period
// falls within the final 30% of the text.
func trimFragments(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, ". "); idx >= 0 {
		first := text[:idx+1]
		if startsLower(first) || len(first) < minLeadSentenceLen {
			text = strings.TrimSpace(text[idx+1:])
		}
	}

	if last := strings.LastIndexByte(text, '.'); last >= 0 && last < len(text)-1 {
		if float64(last) >= trailingCutRatio*float64(len(text)) {
			text = text[:last+1]
		}
	}
	return strings.TrimSpace(text)
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
