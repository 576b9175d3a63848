package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docchat/internal/app"
	"docchat/internal/extract"
	"docchat/internal/httputil"
	"docchat/internal/rag"
)

type askRequest struct {
	Q      string `json:"q" validate:"required"`
	Model  string `json:"model"`
	APIKey string `json:"api_key"`
}

type ragChatRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	APIKey   string `json:"api_key"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	r := httputil.NewRouter(deps.Log)
	r.Get("/", rootHandler())
	r.Post("/ask", askHandler(deps))
	r.Post("/api/upload-pdf", uploadHandler(deps))
	r.Post("/api/rag-chat", ragChatHandler(deps))
	r.Get("/api/rag-status", statusHandler(deps))
	r.Post("/api/rag-reset", resetHandler(deps))
	r.Get("/health", healthHandler(deps))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", deps.Config.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	if err := deps.Cache.Close(); err != nil {
		deps.Log.Warn("cache close failed", "err", err)
	}
	deps.Log.Info("server stopped cleanly")
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "docchat API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"chat":       "/ask",
				"rag_upload": "/api/upload-pdf",
				"rag_chat":   "/api/rag-chat",
				"rag_status": "/api/rag-status",
				"rag_reset":  "/api/rag-reset",
				"health":     "/health",
			},
		})
	}
}

// askHandler is the plain chat endpoint; its response shape is {answer} or
// {error}, matching the pre-RAG API surface.
func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "q is required"})
			return
		}

		answer, err := deps.RAG.Ask(r.Context(), req.Q, req.Model, req.APIKey)
		if err != nil {
			kind := rag.KindOf(err)
			deps.Log.Error("ask failed", "kind", kind, "err", err)
			httputil.WriteJSON(w, kind.HTTPStatus(), map[string]any{"error": rag.Message(err)})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"answer": answer})
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		// Non-PDF uploads are rejected before any bytes are read or parsed.
		if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
			httputil.Fail(deps.Log, w, "Only PDF files are supported", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		pages, err := extract.PDF(content)
		if err != nil {
			httputil.Fail(deps.Log, w, "Could not extract text from the PDF", err, http.StatusBadRequest)
			return
		}

		batchID := uuid.New()
		count, err := deps.RAG.ProcessUpload(r.Context(), header.Filename, pages)
		if err != nil {
			kind := rag.KindOf(err)
			httputil.Fail(deps.Log.With("batch_id", batchID), w, rag.Message(err), err, kind.HTTPStatus())
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"batch_id": batchID.String(),
			"chunks":   count,
			"message":  fmt.Sprintf("PDF processed successfully! %d chunks created.", count),
		})
	}
}

func ragChatHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ragChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		result, err := deps.RAG.Query(r.Context(), req.Question, req.APIKey)
		if err != nil {
			kind := rag.KindOf(err)
			deps.Log.Info("query rejected", "kind", kind, "err", err)
			httputil.WriteJSON(w, kind.HTTPStatus(), map[string]any{
				"success": false,
				"error":   rag.Message(err),
			})
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"answer":   result.Answer,
			"sources":  result.Sources,
			"cached":   result.Cached,
			"fallback": result.Fallback,
		})
	}
}

func statusHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := deps.RAG.Status()
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"ready":            st.Ready,
			"chunks_available": st.ChunksAvailable,
			"api_key_set":      st.APIKeySet,
		})
	}
}

func resetHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.RAG.Reset(r.Context())
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "RAG system reset successfully",
		})
	}
}

func healthHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"rag_ready": deps.Store.Ready(),
		})
	}
}
