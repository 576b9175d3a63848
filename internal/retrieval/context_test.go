package retrieval

import (
	"strings"
	"testing"

	"docchat/internal/docstore"
)

func scored(texts ...string) []ScoredChunk {
	out := make([]ScoredChunk, len(texts))
	for i, t := range texts {
		out[i] = ScoredChunk{Chunk: docstore.Chunk{Index: i, Text: t}, Score: 4}
	}
	return out
}

func TestAssembleContextOrdersByOccurrence(t *testing.T) {
	once := "The billing page is where account changes happen for most users today."
	thrice := "Billing questions, billing disputes, and billing addresses are handled by the billing team."
	got := AssembleContext("billing question", scored(once, thrice))

	parts := strings.Split(got, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("expected 2 context parts, got %d", len(parts))
	}
	if !strings.HasPrefix(parts[0], "Billing questions") {
		t.Errorf("expected highest-occurrence chunk first, got %q", parts[0])
	}
}

func TestAssembleContextTrimsLeadingFragment(t *testing.T) {
	text := "of the previous page. The billing policy is described in this section with all the detail a reader could need."
	got := AssembleContext("billing policy", scored(text))
	if strings.HasPrefix(got, "of the previous") {
		t.Errorf("leading fragment not trimmed: %q", got)
	}
	if !strings.HasPrefix(got, "The billing policy") {
		t.Errorf("expected context to start at the complete sentence, got %q", got)
	}
}

func TestAssembleContextTrimsTrailingFragment(t *testing.T) {
	text := "The subscription can be cancelled from the billing settings page at any time. and then the rest was cut"
	got := AssembleContext("cancel subscription", scored(text))
	if strings.Contains(got, "was cut") {
		t.Errorf("trailing fragment not trimmed: %q", got)
	}
	if !strings.HasSuffix(got, "at any time.") {
		t.Errorf("expected context to end at the last period, got %q", got)
	}
}

func TestAssembleContextDropsShortChunks(t *testing.T) {
	got := AssembleContext("billing", scored("Billing is brief."))
	if got != "" {
		t.Errorf("expected chunks under the length floor to be dropped, got %q", got)
	}
}

func TestAssembleContextCapsChunks(t *testing.T) {
	text := "The billing policy is described in this section with enough detail for everyone."
	got := AssembleContext("billing", scored(text, text, text, text, text))
	if parts := strings.Split(got, "\n\n"); len(parts) != 3 {
		t.Errorf("expected at most 3 context parts, got %d", len(parts))
	}
}

func TestAssembleContextEmptySelection(t *testing.T) {
	if got := AssembleContext("billing", nil); got != "" {
		t.Errorf("expected empty context for empty selection, got %q", got)
	}
}
