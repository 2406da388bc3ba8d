package emails

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Repository interface {
	List(ctx context.Context, p models.PageRequest, f models.EmailFilter) ([]models.Email, int64, error)
	Get(ctx context.Context, id string) (*models.Email, error)
	MarkRead(ctx context.Context, id string) error
	SetStarred(ctx context.Context, id string, starred bool) error
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, e *models.Email) (*models.Email, error)
}
