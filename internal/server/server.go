// Package server exposes the scene, cutout and placeholder renderers over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/setanarut/scenecraft"
	"github.com/setanarut/scenecraft/internal/config"
)

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	// renders bounds how many CPU-bound renders run at once.
	renders *semaphore.Weighted
}

type apiError struct {
	Error string `json:"error"`
}

type sceneRequest struct {
	Prompt      string   `json:"prompt"`
	Style       string   `json:"style"`
	Palette     []string `json:"palette"`
	Mood        string   `json:"mood"`
	Scene       string   `json:"scene"`
	ExpandStyle bool     `json:"expand_style"`
	Seed        *uint64  `json:"seed,omitempty"`
	// Format is "png" (default) or "datauri".
	Format string `json:"format"`
}

type sceneResponse struct {
	Image   string   `json:"image"`
	Palette []string `json:"palette"`
	Motifs  []string `json:"motifs"`
	Passes  []string `json:"passes"`
	Styles  []string `json:"styles"`
}

func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		renders: semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}
}

// Handler returns the routed, request-logging handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scene", s.handleScene)
	mux.HandleFunc("POST /api/cutout", s.handleCutout)
	mux.HandleFunc("GET /api/placeholder", s.handlePlaceholder)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return withLogging(mux, s.logger)
}

// acquire waits for a render slot. It writes the error response itself and
// reports false when the client went away first.
func (s *Server) acquire(w http.ResponseWriter, r *http.Request) bool {
	if err := s.renders.Acquire(r.Context(), 1); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "request cancelled while queued"})
		return false
	}
	return true
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req sceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json body"})
		return
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format != "" && format != "png" && format != "datauri" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "format must be png or datauri"})
		return
	}

	// The preset expansion only feeds motif detection; overlays still match
	// the label the client picked.
	scene := req.Scene
	if req.ExpandStyle && strings.TrimSpace(req.Style) != "" {
		scene = strings.TrimSpace(scene + " " + scenecraft.ExpandStyle(req.Style))
	}
	sr := scenecraft.SceneRequest{
		Prompt:  req.Prompt,
		Style:   req.Style,
		Palette: req.Palette,
		Mood:    req.Mood,
		Scene:   scene,
	}
	if req.Seed != nil {
		sr.Rand = rand.New(rand.NewPCG(*req.Seed, *req.Seed))
	}

	if !s.acquire(w, r) {
		return
	}
	res := scenecraft.RenderScene(sr)
	png, err := scenecraft.EncodePNG(res.Image)
	s.renders.Release(1)
	if err != nil {
		s.logger.Error("encode scene", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "encode failed"})
		return
	}

	if format != "datauri" {
		writeImage(w, "image/png", png)
		return
	}
	motifs := make([]string, 0, len(res.Motifs.Active()))
	for _, m := range res.Motifs.Active() {
		motifs = append(motifs, m.String())
	}
	writeJSON(w, http.StatusOK, sceneResponse{
		Image:   scenecraft.DataURI("image/png", png),
		Palette: res.Palette.Slice(),
		Motifs:  motifs,
		Passes:  res.Passes,
		Styles:  res.Styles,
	})
}

func (s *Server) handleCutout(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var input []byte
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid multipart form"})
			return
		}
		file, _, ferr := r.FormFile("image")
		if ferr != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "missing image"})
			return
		}
		defer file.Close()
		input, err = io.ReadAll(file)
	} else {
		input, err = io.ReadAll(r.Body)
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, apiError{Error: "image too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, apiError{Error: "failed to read image"})
		return
	}
	if len(input) == 0 {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "missing image"})
		return
	}

	opt := scenecraft.DefaultOptions()
	opt.MaxSide = s.cfg.SegmentMaxSide
	opt.Tolerance = s.cfg.SegmentTolerance
	opt.MaxPixels = s.cfg.MaxPixels

	if !s.acquire(w, r) {
		return
	}
	out, err := scenecraft.Cutout(input, opt)
	s.renders.Release(1)
	switch {
	case errors.Is(err, scenecraft.ErrImageTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, apiError{Error: "image dimensions too large"})
		return
	case err != nil:
		s.logger.Warn("cutout", "err", err, "bytes", len(input))
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "could not decode image"})
		return
	}
	if strings.HasPrefix(string(input[:min(len(input), 5)]), "data:") {
		w.Header().Set("content-type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
		return
	}
	writeImage(w, "image/png", out)
}

// handlePlaceholder serves a gallery thumbnail. Either index and label are
// given directly, or page and slot (plus an optional search term q) derive
// them the way the gallery does; that path also reports the page's search
// phrase in X-Search-Term.
func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	if category == "" {
		category = scenecraft.Categories[0]
	}

	index, label := 0, strings.TrimSpace(q.Get("label"))
	if raw := q.Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "index must be an integer"})
			return
		}
		index = n
		if label == "" {
			label = category
		}
	} else {
		page, perr := strconv.Atoi(cmpOr(q.Get("page"), "0"))
		slot, serr := strconv.Atoi(cmpOr(q.Get("slot"), "0"))
		if perr != nil || serr != nil || slot < 0 || slot >= scenecraft.PlaceholdersPerPage {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid page or slot"})
			return
		}
		index = scenecraft.PlaceholderIndex(page, slot)
		term := strings.TrimSpace(q.Get("q"))
		if label == "" {
			label = scenecraft.PlaceholderLabel(category, term, page, slot)
		}
		// The phrase a client should search for to replace the placeholder
		// with a real photo.
		if term == "" {
			term = scenecraft.SearchTerm(category, page)
		}
		w.Header().Set("X-Search-Term", term)
	}

	img := scenecraft.RenderPlaceholder(index, label, category)
	b, err := scenecraft.EncodeJPEG(img, s.cfg.PlaceholderQuality)
	if err != nil {
		s.logger.Error("encode placeholder", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "encode failed"})
		return
	}
	writeImage(w, "image/jpeg", b)
}

func cmpOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeImage(w http.ResponseWriter, mime string, b []byte) {
	w.Header().Set("content-type", mime)
	w.Header().Set("content-length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
