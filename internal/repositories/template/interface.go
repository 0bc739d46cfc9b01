package template

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/geodraw/internal/repositories/template Repository

import (
	"context"

	"github.com/KirkDiggler/geodraw/internal/models"
)

// Repository is the shape template catalog. The coordination engine only
// reads from it; catalog management is outside this service.
type Repository interface {
	// GetTemplate retrieves a template by ID
	GetTemplate(ctx context.Context, input *GetTemplateInput) (*models.ShapeTemplate, error)

	// ListTemplates retrieves the whole catalog
	ListTemplates(ctx context.Context, input *ListTemplatesInput) ([]*models.ShapeTemplate, error)

	// Seed installs the built-in templates, leaving existing rows alone
	Seed(ctx context.Context) error
}
