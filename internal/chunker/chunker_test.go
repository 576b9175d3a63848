package chunker

import (
	"strings"
	"testing"
)

func TestSplitShortInputSingleChunk(t *testing.T) {
	text := "Contact support to cancel your subscription and billing."
	chunks := Split(text, Options{Size: 1000, Overlap: 200})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("expected chunk to equal trimmed input, got %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if chunks := Split("", Options{Size: 100}); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
	if chunks := Split("   \n\t  ", Options{Size: 100}); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for whitespace input, got %d", len(chunks))
	}
}

func TestSplitRespectsSizeBudget(t *testing.T) {
	text := strings.Repeat("word ", 400)
	chunks := Split(text, Options{Size: 100, Overlap: 20})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c.Text) > 100 {
			t.Errorf("chunk %d exceeds size budget: %d chars", c.Index, len(c.Text))
		}
	}
}

func TestSplitOverlapContinuity(t *testing.T) {
	text := "aaaa bbbb cccc dddd eeee ffff"
	chunks := Split(text, Options{Size: 20, Overlap: 8})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// The second chunk starts with the tail of the first.
	if !strings.HasPrefix(chunks[1].Text, "dddd") {
		t.Errorf("expected overlap seed at chunk start, got %q", chunks[1].Text)
	}
	if !strings.HasSuffix(chunks[0].Text, "dddd") {
		t.Errorf("expected first chunk to end with seed word, got %q", chunks[0].Text)
	}
}

func TestSplitChunkCountMonotonic(t *testing.T) {
	opts := Options{Size: 50, Overlap: 10}
	prev := 0
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("monotonic growth ")
		count := len(Split(b.String(), opts))
		if count < prev {
			t.Fatalf("chunk count decreased from %d to %d at iteration %d", prev, count, i)
		}
		prev = count
	}
}

func TestSplitDefaults(t *testing.T) {
	text := strings.Repeat("test ", 500)
	chunks := Split(text, Options{})
	if len(chunks) == 0 {
		t.Fatal("expected chunks with default options")
	}
	for _, c := range chunks {
		if len(c.Text) > 1000 {
			t.Errorf("chunk exceeded default size budget: %d chars", len(c.Text))
		}
	}
}

func TestCleanDropsShortChunks(t *testing.T) {
	chunks := []Chunk{
		{Index: 0, Text: "too short"},
		{Index: 1, Text: strings.Repeat("a real sentence with actual content here ", 3)},
	}
	cleaned := Clean(chunks, CleanOptions{MinLength: 50, MaxMetadataRatio: 0.1})
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 chunk after cleaning, got %d", len(cleaned))
	}
	if !strings.HasPrefix(cleaned[0].Text, "a real sentence") {
		t.Errorf("wrong chunk survived: %q", cleaned[0].Text)
	}
}

func TestCleanDropsMetadataHeavyChunks(t *testing.T) {
	boilerplate := "contact alice@example.com bob@example.com https://example.com www.example.com for details on everything"
	content := strings.Repeat("the methodology section describes the experiment setup in detail ", 2)
	chunks := []Chunk{
		{Index: 0, Text: boilerplate},
		{Index: 1, Text: content},
	}
	cleaned := Clean(chunks, CleanOptions{MinLength: 50, MaxMetadataRatio: 0.1})
	if len(cleaned) != 1 {
		t.Fatalf("expected metadata-heavy chunk dropped, got %d chunks", len(cleaned))
	}
	if strings.Contains(cleaned[0].Text, "@") {
		t.Errorf("metadata chunk survived: %q", cleaned[0].Text)
	}
}

func TestCleanReindexesSurvivors(t *testing.T) {
	long := strings.Repeat("enough content to clear the minimum length filter ", 2)
	chunks := []Chunk{
		{Index: 0, Text: "short"},
		{Index: 1, Text: long},
		{Index: 2, Text: "also short"},
		{Index: 3, Text: long},
	}
	cleaned := Clean(chunks, CleanOptions{})
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(cleaned))
	}
	for i, c := range cleaned {
		if c.Index != i {
			t.Errorf("expected reindexed chunk %d, got index %d", i, c.Index)
		}
	}
}

func TestCleanEmptyResultIsValid(t *testing.T) {
	cleaned := Clean([]Chunk{{Index: 0, Text: "tiny"}}, CleanOptions{})
	if len(cleaned) != 0 {
		t.Errorf("expected empty result, got %d chunks", len(cleaned))
	}
}
