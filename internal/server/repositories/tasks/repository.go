package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)

	// Save persists a previously loaded, mutated task document.
	Save(ctx context.Context, task *models.Task) error

	Delete(ctx context.Context, id primitive.ObjectID) error
}
