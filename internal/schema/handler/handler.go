package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"issuer-verifier/internal/schema/models"
	schemaservice "issuer-verifier/internal/schema/service"
	dErrors "issuer-verifier/pkg/domain-errors"
	"issuer-verifier/pkg/platform/httputil"
	"issuer-verifier/pkg/requestcontext"
)

// Service defines the schema operations used by the handler.
type Service interface {
	CreateSchema(ctx context.Context, req models.CreateRequest) (*models.Schema, error)
	GetAllSchemas(ctx context.Context) ([]models.Schema, error)
	GetSchemaByID(ctx context.Context, id string) (*models.Schema, error)
	DeleteSchema(ctx context.Context, id string) error
	SchemaExistsByType(ctx context.Context, schemaType string) (bool, error)
	GetLatestSchemaByType(ctx context.Context, schemaType string) (*models.Schema, error)
}

// Handler wires schema endpoints to the schema service.
type Handler struct {
	service       Service
	logger        *slog.Logger
	exposeDetails bool
}

func New(service Service, logger *slog.Logger, exposeDetails bool) *Handler {
	return &Handler{service: service, logger: logger, exposeDetails: exposeDetails}
}

// Register mounts schema endpoints; the caller decides the prefix.
func (h *Handler) Register(r chi.Router) {
	r.Post("/schema", h.HandleCreate)
	r.Get("/schema", h.HandleList)
	r.Get("/schema/{id}", h.HandleGet)
	r.Delete("/schema/{id}", h.HandleDelete)
	r.Get("/schema/type/{type}/latest", h.HandleLatestByType)
	r.Get("/schema/type/{type}/exists", h.HandleExistsByType)
}

var errSchemaNotFound = dErrors.New(dErrors.CodeNotFound, "Schema not found")

// HandleCreate handles POST /schema.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[models.CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	schema, err := h.service.CreateSchema(ctx, *req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, schema)
}

// HandleList handles GET /schema.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	schemas, err := h.service.GetAllSchemas(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if schemas == nil {
		schemas = []models.Schema{}
	}
	httputil.WriteJSON(w, http.StatusOK, schemas)
}

// HandleGet handles GET /schema/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	schema, err := h.service.GetSchemaByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if schema == nil {
		h.writeError(w, errSchemaNotFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schema)
}

// HandleDelete handles DELETE /schema/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSchema(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// HandleLatestByType handles GET /schema/type/{type}/latest.
func (h *Handler) HandleLatestByType(w http.ResponseWriter, r *http.Request) {
	schema, err := h.service.GetLatestSchemaByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if schema == nil {
		h.writeError(w, errSchemaNotFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, schema)
}

// HandleExistsByType handles GET /schema/type/{type}/exists.
func (h *Handler) HandleExistsByType(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.SchemaExistsByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ExistsResponse{Exists: exists})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err, httputil.WithDetails(h.exposeDetails))
}

var _ Service = (*schemaservice.Service)(nil)
