package posts

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

type Repository interface {
	List(ctx context.Context, p models.PageRequest, f models.PostFilter) ([]models.Post, int64, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	SetStatus(ctx context.Context, id string, status models.PostStatus) error
	Delete(ctx context.Context, id string) error
}
