package chunker

import (
	"strings"
)

// Options controls how text is split into chunks.
type Options struct {
	// Size is the character budget per chunk.
	Size int
	// Overlap is the number of trailing characters of a chunk re-included
	// at the start of the next one for continuity.
	Overlap int
}

// CleanOptions controls the post-split filter.
type CleanOptions struct {
	// MinLength drops chunks shorter than this many characters.
	MinLength int
	// MaxMetadataRatio drops chunks whose ratio of email/URL tokens to
	// total words exceeds this value; such chunks are almost always
	// headers, footers, or reference lists rather than content.
	MaxMetadataRatio float64
}

// Chunk represents a bounded span of the document text.
type Chunk struct {
	Index     int
	Text      string
	WordCount int
}

const (
	defaultSize      = 1000
	defaultOverlap   = 200
	defaultMinLength = 50
	defaultMetaRatio = 0.1
)

// Split greedily accumulates whitespace-delimited words until adding the
// next word would exceed the character budget, then emits a chunk and seeds
// the next one with the trailing Overlap characters of the previous text.
func Split(text string, opts Options) []Chunk {
	if opts.Size <= 0 {
		opts.Size = defaultSize
	}
	if opts.Overlap < 0 {
		opts.Overlap = defaultOverlap
	}
	if opts.Overlap >= opts.Size {
		opts.Overlap = opts.Size / 2
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []Chunk
	emit := func(text string) {
		chunks = append(chunks, Chunk{
			Index:     len(chunks),
			Text:      text,
			WordCount: len(strings.Fields(text)),
		})
	}

	var cur []string
	curLen := 0
	for _, w := range words {
		needed := len(w)
		if curLen > 0 {
			needed++ // joining space
		}
		if curLen > 0 && curLen+needed > opts.Size {
			text := strings.Join(cur, " ")
			emit(text)
			cur = cur[:0]
			curLen = 0
			if seed := overlapTail(text, opts.Overlap); seed != "" {
				cur = append(cur, seed)
				curLen = len(seed)
			}
			needed = len(w)
			if curLen > 0 {
				needed++
			}
		}
		cur = append(cur, w)
		curLen += needed
	}
	if curLen > 0 {
		emit(strings.Join(cur, " "))
	}
	return chunks
}

// overlapTail returns the last n characters of s, advanced to the next word
// boundary so the seed never starts mid-word.
func overlapTail(s string, n int) string {
	if n <= 0 || len(s) == 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	tail := s[len(s)-n:]
	if idx := strings.IndexByte(tail, ' '); idx >= 0 {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}

// Clean filters out chunks that are too short to be useful or that look
// like boilerplate metadata, and reindexes the survivors. An empty result
// is a valid outcome the caller must treat as "no usable content".
func Clean(chunks []Chunk, opts CleanOptions) []Chunk {
	if opts.MinLength <= 0 {
		opts.MinLength = defaultMinLength
	}
	if opts.MaxMetadataRatio <= 0 {
		opts.MaxMetadataRatio = defaultMetaRatio
	}

	var cleaned []Chunk
	for _, c := range chunks {
		text := strings.TrimSpace(c.Text)
		if len(text) < opts.MinLength {
			continue
		}
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}
		meta := 0
		for _, w := range words {
			if isMetadataToken(w) {
				meta++
			}
		}
		if float64(meta)/float64(len(words)) > opts.MaxMetadataRatio {
			continue
		}
		cleaned = append(cleaned, Chunk{
			Index:     len(cleaned),
			Text:      text,
			WordCount: len(words),
		})
	}
	return cleaned
}

// isMetadataToken reports whether a word looks like an email address or URL.
func isMetadataToken(w string) bool {
	lw := strings.ToLower(w)
	return strings.Contains(lw, "@") ||
		strings.HasPrefix(lw, "http://") ||
		strings.HasPrefix(lw, "https://") ||
		strings.HasPrefix(lw, "www.")
}
