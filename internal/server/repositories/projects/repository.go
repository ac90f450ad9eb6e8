package projects

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)

	// ListForUser returns projects the user owns plus projects naming
	// the user's email as collaborator.
	ListForUser(ctx context.Context, userID primitive.ObjectID, email string) ([]models.Project, error)

	// Save persists a previously loaded, mutated project document.
	Save(ctx context.Context, project *models.Project) error

	Delete(ctx context.Context, id primitive.ObjectID) error

	// PushTask and PullTask maintain the project's task id list when
	// tasks are created or deleted.
	PushTask(ctx context.Context, projectID, taskID primitive.ObjectID) error
	PullTask(ctx context.Context, projectID, taskID primitive.ObjectID) error
}
