package retrieval

import (
	"strings"

	"docchat/internal/docstore"
)

// RelevantToDocument is a binary pre-retrieval gate, looser than the
// scoring engine. A question that uses account/support vocabulary is only
// plausibly answerable when the loaded document mentions that vocabulary at
// all; if it does not, the question is rejected as out-of-domain before
// retrieval runs. Questions without support vocabulary always pass.
func RelevantToDocument(question string, chunks []docstore.Chunk) bool {
	lq := strings.ToLower(question)
	var used []string
	for _, w := range supportVocabulary {
		if strings.Contains(lq, w) {
			used = append(used, w)
		}
	}
	if len(used) == 0 {
		return true
	}

	for _, c := range chunks {
		text := strings.ToLower(c.Text)
		for _, w := range used {
			if strings.Contains(text, w) {
				return true
			}
		}
	}
	return false
}
