package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
