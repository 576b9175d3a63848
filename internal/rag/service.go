// Package rag orchestrates the upload and query pipelines: chunking into
// the document store, keyword retrieval, context assembly, the external
// completion call, and the answer quality gate with extractive fallback.
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docchat/internal/cache"
	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/docstore"
	"docchat/internal/llm"
	"docchat/internal/quality"
	"docchat/internal/retrieval"
	"docchat/internal/retry"
)

const (
	answerSystemPrompt = "You are a helpful assistant that answers questions based on the provided context."

	answerPromptTemplate = "Context:\n%s\n\nQuestion: %s\n\n" +
		"Please provide a comprehensive answer based on the context above. " +
		"If the context doesn't contain enough information to answer the question, say so clearly."

	completionAttempts  = 2
	completionRetryBase = 500 * time.Millisecond
	sourcePreviewMaxLen = 150
)

// Service owns the end-to-end pipelines. Safe for concurrent use: the
// document store is internally locked and everything else is stateless.
type Service struct {
	cfg    config.Config
	log    *slog.Logger
	store  *docstore.Store
	engine *retrieval.Engine
	llm    llm.Client
	cache  cache.Cache
}

// NewService wires the pipeline components together.
func NewService(cfg config.Config, log *slog.Logger, store *docstore.Store, engine *retrieval.Engine, client llm.Client, answerCache cache.Cache) *Service {
	return &Service{
		cfg:    cfg,
		log:    log,
		store:  store,
		engine: engine,
		llm:    client,
		cache:  answerCache,
	}
}

// Source identifies a chunk that contributed to an answer.
type Source struct {
	Index   int    `json:"index"`
	Score   int    `json:"score"`
	Preview string `json:"preview"`
}

// QueryResult is the success variant of a RAG query.
type QueryResult struct {
	Answer   string
	Sources  []Source
	Cached   bool
	Fallback bool
}

// Status describes the current state of the document store.
type Status struct {
	Ready           bool
	ChunksAvailable int
	APIKeySet       bool
}

// Ask is the plain chat flow: no retrieval, the question goes straight to
// the model. Upstream failures surface directly as errors here.
func (s *Service) Ask(ctx context.Context, question, model, apiKey string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", E(KindInvalidInput, "Question cannot be empty.")
	}
	if !s.cfg.ModelAllowed(model) {
		return "", E(KindInvalidInput, fmt.Sprintf("Unsupported model: %s", model))
	}
	if apiKey == "" && s.cfg.OpenAIKey == "" {
		return "", E(KindMissingCredential, "Missing API key (none configured on the server or provided in the request).")
	}

	var answer string
	err := retry.Do(ctx, completionAttempts, completionRetryBase, func(ctx context.Context) error {
		var err error
		answer, err = s.llm.Complete(ctx, llm.Request{
			Prompt:      question,
			Model:       model,
			APIKey:      apiKey,
			Temperature: s.cfg.Temperature,
			MaxTokens:   s.cfg.MaxTokens,
		})
		return err
	})
	if err != nil {
		return "", Wrap(KindUpstreamFailure, "Chat completion failed.", err)
	}
	return strings.TrimSpace(answer), nil
}

// ProcessUpload chunks extracted page texts and replaces the document store
// contents. Returns the stored chunk count. Zero usable chunks is a
// distinct failure, never silent success.
func (s *Service) ProcessUpload(ctx context.Context, filename string, pages []string) (int, error) {
	text := strings.Join(pages, "\n")

	raw := chunker.Split(text, chunker.Options{
		Size:    s.cfg.ChunkSize,
		Overlap: s.cfg.ChunkOverlap,
	})
	cleaned := chunker.Clean(raw, chunker.CleanOptions{
		MinLength:        s.cfg.MinChunkLength,
		MaxMetadataRatio: s.cfg.MaxMetadataRatio,
	})
	if len(cleaned) == 0 {
		return 0, E(KindExtractionFailure, "No usable text content found in the document.")
	}

	chunks := make([]docstore.Chunk, len(cleaned))
	for i, c := range cleaned {
		chunks[i] = docstore.Chunk{
			Source: filename,
			Index:  c.Index,
			Text:   c.Text,
		}
	}
	s.store.Replace(chunks)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("cache invalidation failed", "err", err)
	}

	s.log.Info("document processed", "filename", filename, "pages", len(pages), "chunks", len(chunks))
	return len(chunks), nil
}

// Query is the RAG flow. Terminal states per the state machine: empty store,
// out-of-domain rejection, no retrieval match, or an answer (generated or
// extractive fallback). Upstream failures after retrieval take the fallback
// path instead of erroring out.
func (s *Service) Query(ctx context.Context, question, apiKey string) (QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return QueryResult{}, E(KindInvalidInput, "Question cannot be empty.")
	}
	if !s.store.Ready() {
		return QueryResult{}, E(KindNoContentLoaded, "No documents loaded. Please upload a PDF first.")
	}

	cacheKey := cache.Key(question, s.store.Generation())
	if cached, err := s.cache.GetAnswer(ctx, cacheKey); err == nil && cached != nil {
		s.log.Info("answer cache hit", "question", question)
		var sources []Source
		if len(cached.Sources) > 0 {
			if err := json.Unmarshal(cached.Sources, &sources); err != nil {
				s.log.Warn("failed to unmarshal cached sources", "err", err)
				sources = nil
			}
		}
		return QueryResult{Answer: cached.Answer, Sources: sources, Cached: true, Fallback: cached.Fallback}, nil
	}

	chunks := s.store.Snapshot()
	if len(chunks) == 0 {
		// The store was cleared between the readiness check and the snapshot.
		return QueryResult{}, E(KindNoContentLoaded, "No documents loaded. Please upload a PDF first.")
	}

	if !retrieval.RelevantToDocument(question, chunks) {
		return QueryResult{}, E(KindOutOfDomain, "The question does not appear to relate to the loaded document.")
	}

	selected := s.engine.Retrieve(question, chunks)
	if len(selected) == 0 {
		return QueryResult{}, E(KindNoMatchFound, "No relevant content found for your question.")
	}

	contextText := retrieval.AssembleContext(question, selected)
	if contextText == "" {
		return QueryResult{}, E(KindNoMatchFound, "No relevant content found for your question.")
	}

	if apiKey == "" && s.cfg.OpenAIKey == "" {
		return QueryResult{}, E(KindMissingCredential, "OpenAI API key not configured.")
	}

	answer, fallback, upstreamErr := s.generateAnswer(ctx, question, contextText, apiKey)
	result := QueryResult{
		Answer:   answer,
		Sources:  buildSources(selected),
		Fallback: fallback,
	}

	// Answers salvaged from an upstream failure are transient; caching them
	// would pin the degraded answer for the whole TTL.
	if upstreamErr == nil {
		s.cacheResult(ctx, cacheKey, result)
	}
	return result, nil
}

// generateAnswer calls the model and applies the quality gate. Both an
// upstream failure and a gate rejection produce the extractive fallback.
func (s *Service) generateAnswer(ctx context.Context, question, contextText, apiKey string) (answer string, fallback bool, upstreamErr error) {
	prompt := fmt.Sprintf(answerPromptTemplate, contextText, question)

	err := retry.Do(ctx, completionAttempts, completionRetryBase, func(ctx context.Context) error {
		var err error
		answer, err = s.llm.Complete(ctx, llm.Request{
			System:      answerSystemPrompt,
			Prompt:      prompt,
			APIKey:      apiKey,
			Temperature: s.cfg.Temperature,
			MaxTokens:   s.cfg.MaxTokens,
		})
		return err
	})
	if err != nil {
		s.log.Warn("completion failed, using extractive fallback", "err", err)
		return quality.ExtractiveFallback(question, contextText), true, err
	}

	answer = strings.TrimSpace(answer)
	if !quality.Acceptable(answer, s.qualityOptions()) {
		s.log.Info("answer rejected by quality gate, using extractive fallback")
		return quality.ExtractiveFallback(question, contextText), true, nil
	}
	return answer, false, nil
}

func (s *Service) cacheResult(ctx context.Context, key string, result QueryResult) {
	sources, err := json.Marshal(result.Sources)
	if err != nil {
		s.log.Warn("failed to marshal sources, skipping cache", "err", err)
		return
	}
	ttl := time.Duration(s.cfg.CacheTTL) * time.Second
	err = s.cache.SetAnswer(ctx, key, &cache.Answer{
		Answer:   result.Answer,
		Fallback: result.Fallback,
		Sources:  sources,
	}, ttl)
	if err != nil {
		s.log.Warn("failed to cache answer", "err", err)
	}
}

// Status reports document store readiness and whether a server-side API key
// is configured.
func (s *Service) Status() Status {
	return Status{
		Ready:           s.store.Ready(),
		ChunksAvailable: s.store.Len(),
		APIKeySet:       s.cfg.OpenAIKey != "",
	}
}

// Reset clears the document store and drops cached answers.
func (s *Service) Reset(ctx context.Context) {
	s.store.Clear()
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("cache invalidation failed", "err", err)
	}
	s.log.Info("document store reset")
}

func (s *Service) qualityOptions() quality.Options {
	return quality.Options{
		MinAnswerLength:    s.cfg.MinAnswerLength,
		MaxFragmentMarkers: s.cfg.MaxFragmentMarkers,
		MaxTechnicalRatio:  s.cfg.MaxTechnicalRatio,
	}
}

// buildSources converts scored chunks into response sources with truncated
// previews.
func buildSources(selected []retrieval.ScoredChunk) []Source {
	sources := make([]Source, len(selected))
	for i, sc := range selected {
		sources[i] = Source{
			Index:   sc.Chunk.Index,
			Score:   sc.Score,
			Preview: truncate(sc.Chunk.Text, sourcePreviewMaxLen),
		}
	}
	return sources
}

// truncate limits text to maxLen characters, cutting at a word boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if idx := strings.LastIndex(s[:maxLen], " "); idx > 0 {
		return s[:idx] + "..."
	}
	return s[:maxLen] + "..."
}
