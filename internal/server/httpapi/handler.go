package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/dmitrijs2005/personadesk/internal/server/archive"
)

const (
	maxBodyBytes   = 1 << 20
	failureDetails = "Ensure your project has Veo access and billing enabled."
	archiveTimeout = 2 * time.Minute
)

// Generator turns a prompt into video bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

type Handler struct {
	gen      Generator
	archiver archive.Archiver
	log      logging.Logger
	wg       sync.WaitGroup
}

// NewHandler builds a Handler. archiver may be nil.
func NewHandler(gen Generator, archiver archive.Archiver, log logging.Logger) *Handler {
	return &Handler{gen: gen, archiver: archiver, log: log.With("module", "httpapi")}
}

type reelRequest struct {
	Prompt  string `json:"prompt"`
	Persona *struct {
		Name string `json:"name"`
	} `json:"persona,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GenerateReel holds the connection open until the video is ready and
// answers with the raw mp4.
func (h *Handler) GenerateReel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reelRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
		return
	}

	if req.Persona != nil && req.Persona.Name != "" {
		h.log.Info(ctx, "reel requested", "persona", req.Persona.Name)
	}

	data, err := h.gen.Generate(ctx, req.Prompt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Details: failureDetails})
		return
	}

	w.Header().Set("Content-Type", common.VideoContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Warn(ctx, "video not delivered", "error", err)
	} else {
		h.log.Info(ctx, "video sent to client", "bytes", len(data))
	}

	h.archive(ctx, data)
}

// archive uploads data in the background when an archiver is configured.
func (h *Handler) archive(ctx context.Context, data []byte) {
	if h.archiver == nil {
		return
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		defer cancel()

		key, err := h.archiver.Store(actx, data)
		if err != nil {
			h.log.Error(actx, "archive upload failed", "error", err)
			return
		}
		h.log.Info(actx, "reel archived", "key", key)
	}()
}

// Wait blocks until background archive uploads finish.
func (h *Handler) Wait() {
	h.wg.Wait()
}
