package users

import (
	"context"

	"github.com/dmitrijs2005/adminconsole/internal/models"
	smodels "github.com/dmitrijs2005/adminconsole/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, p models.PageRequest, f models.UserFilter) ([]models.User, int64, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*smodels.Account, error)
	Create(ctx context.Context, a *smodels.Account) (*smodels.Account, error)
	SetStatus(ctx context.Context, id string, status models.UserStatus) error
	Delete(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string) error
}
