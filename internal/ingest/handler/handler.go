package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"roster/internal/ingest"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/httputil"
	"roster/pkg/requestcontext"
)

const maxBodyBytes = 4 << 20

// Service normalizes raw payloads; *ingest.Pipeline satisfies it.
type Service interface {
	Process(ctx context.Context, rec ingest.Record) (*ingest.Result, error)
	ProcessBatch(ctx context.Context, recs []ingest.Record) ([]ingest.Outcome, error)
}

// Handler exposes normalization over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts normalization endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/normalize/{entity}", h.HandleNormalize)
	r.Post("/normalize/{entity}/batch", h.HandleNormalizeBatch)
}

// HandleNormalize handles POST /normalize/{entity}: one wire record in, its
// canonical form out.
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entity, body, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.Process(ctx, ingest.Record{Entity: entity, Payload: body})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "record normalized",
		"request_id", requestcontext.RequestID(ctx),
		"entity", entity,
		"sourced_id", res.SourcedID,
		"skipped", res.Skipped,
		"duration_ms", time.Since(requestcontext.Now(ctx)).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, res)
}

// BatchItem is one entry of a batch response.
type BatchItem struct {
	Index  int                     `json:"index"`
	Result *ingest.Result          `json:"result,omitempty"`
	Error  *httputil.ErrorResponse `json:"error,omitempty"`
}

// BatchResponse reports each record independently.
type BatchResponse struct {
	Normalized int         `json:"normalized"`
	Rejected   int         `json:"rejected"`
	Items      []BatchItem `json:"items"`
}

// HandleNormalizeBatch handles POST /normalize/{entity}/batch with a JSON
// array of wire records.
func (h *Handler) HandleNormalizeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entity, body, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "batch body must be a JSON array"))
		return
	}

	elems := doc.Array()
	recs := make([]ingest.Record, len(elems))
	for i, e := range elems {
		recs[i] = ingest.Record{Entity: entity, Payload: []byte(e.Raw)}
	}

	outcomes, err := h.service.ProcessBatch(ctx, recs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := BatchResponse{Items: make([]BatchItem, len(outcomes))}
	for i, o := range outcomes {
		item := BatchItem{Index: i, Result: o.Result}
		if o.Err != nil {
			resp.Rejected++
			item.Error = &httputil.ErrorResponse{
				Error:       string(dErrors.CodeOf(o.Err)),
				Description: o.Err.Error(),
				Field:       dErrors.FieldOf(o.Err),
			}
		} else {
			resp.Normalized++
		}
		resp.Items[i] = item
	}

	h.logger.InfoContext(ctx, "batch normalized",
		"request_id", requestcontext.RequestID(ctx),
		"entity", entity,
		"normalized", resp.Normalized,
		"rejected", resp.Rejected,
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request) (ingest.Entity, []byte, bool) {
	entity, err := ingest.ParseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", nil, false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "unable to read request body"))
		return "", nil, false
	}
	return entity, body, true
}
