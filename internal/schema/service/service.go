// Package service manages credential schemas held by the upstream credential API.
package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/samber/lo"

	"issuer-verifier/internal/schema/models"
	"issuer-verifier/internal/upstream"
	"issuer-verifier/pkg/requestcontext"
	"issuer-verifier/pkg/validation"
)

const schemaPath = "/api/v1/schema"

type Option func(*Service)

// Service proxies schema CRUD to the upstream API and derives type lookups
// from the full schema list.
type Service struct {
	client upstream.API
	logger *slog.Logger
}

func NewService(client upstream.API, opts ...Option) *Service {
	svc := &Service{
		client: client,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// CreateSchema registers a schema whose credential subject is an object with
// the given properties and required fields.
func (s *Service) CreateSchema(ctx context.Context, req models.CreateRequest) (*models.Schema, error) {
	if err := validation.Required(req, "Missing required schema parameters",
		"name", "type", "properties", "requiredFields"); err != nil {
		return nil, err
	}

	var created models.Schema
	if err := s.client.Post(ctx, schemaPath, req.UpstreamBody(), &created); err != nil {
		s.logFailure(ctx, "failed to create schema", err, "type", req.Type)
		return nil, err
	}
	return &created, nil
}

func (s *Service) GetAllSchemas(ctx context.Context) ([]models.Schema, error) {
	var schemas []models.Schema
	if err := s.client.Get(ctx, schemaPath, &schemas); err != nil {
		s.logFailure(ctx, "failed to get schemas", err)
		return nil, err
	}
	return schemas, nil
}

// GetSchemaByID returns nil without error when upstream answers 2xx with an
// empty or null body.
func (s *Service) GetSchemaByID(ctx context.Context, id string) (*models.Schema, error) {
	if err := validation.Required(map[string]any{"id": id}, "Schema ID is required", "id"); err != nil {
		return nil, err
	}

	var schema *models.Schema
	if err := s.client.Get(ctx, schemaPath+"/"+url.PathEscape(id), &schema); err != nil {
		s.logFailure(ctx, "failed to get schema", err, "schema_id", id)
		return nil, err
	}
	return schema, nil
}

func (s *Service) DeleteSchema(ctx context.Context, id string) error {
	if err := validation.Required(map[string]any{"id": id}, "Schema ID is required", "id"); err != nil {
		return err
	}

	if err := s.client.Delete(ctx, schemaPath+"/"+url.PathEscape(id)); err != nil {
		s.logFailure(ctx, "failed to delete schema", err, "schema_id", id)
		return err
	}
	return nil
}

func (s *Service) SchemaExistsByType(ctx context.Context, schemaType string) (bool, error) {
	if err := requireType(schemaType); err != nil {
		return false, err
	}

	schemas, err := s.GetAllSchemas(ctx)
	if err != nil {
		s.logFailure(ctx, "failed to check schema type", err, "schema_type", schemaType)
		return false, err
	}
	return lo.ContainsBy(schemas, func(schema models.Schema) bool {
		return schema.Type == schemaType
	}), nil
}

// GetLatestSchemaByType returns the schema of the given type with the highest
// version, or nil when none exists. Ties resolve to the first in upstream order.
func (s *Service) GetLatestSchemaByType(ctx context.Context, schemaType string) (*models.Schema, error) {
	if err := requireType(schemaType); err != nil {
		return nil, err
	}

	schemas, err := s.GetAllSchemas(ctx)
	if err != nil {
		s.logFailure(ctx, "failed to get latest schema by type", err, "schema_type", schemaType)
		return nil, err
	}

	matching := lo.Filter(schemas, func(schema models.Schema, _ int) bool {
		return schema.Type == schemaType
	})
	if len(matching) == 0 {
		return nil, nil
	}
	latest := lo.MaxBy(matching, func(a, b models.Schema) bool {
		return a.Version > b.Version
	})
	return &latest, nil
}

// EnsureTemplate registers tmpl upstream unless a schema of its type already
// exists. It reports whether a schema was created.
func (s *Service) EnsureTemplate(ctx context.Context, tmpl models.Template) (bool, error) {
	exists, err := s.SchemaExistsByType(ctx, tmpl.Type)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	created, err := s.CreateSchema(ctx, tmpl.CreateRequest())
	if err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "schema template registered",
		"schema_type", tmpl.Type,
		"schema_id", created.ID,
	)
	return true, nil
}

func requireType(schemaType string) error {
	return validation.Required(map[string]any{"type": schemaType}, "Schema type is required", "type")
}

func (s *Service) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"request_id", requestcontext.RequestID(ctx),
		"status", upstream.StatusOf(err),
		"error", err,
	)
	s.logger.ErrorContext(ctx, msg, attrs...)
}
