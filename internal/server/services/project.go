package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/common"
	"github.com/anvitha-acharya/DevOrgs/internal/logging"
	"github.com/anvitha-acharya/DevOrgs/internal/server/authz"
	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
	"github.com/anvitha-acharya/DevOrgs/internal/server/repositories/projects"
)

// ProjectService implements project CRUD with the authorization policy
// applied after existence checks, per the 400/404-before-403 ordering.
type ProjectService struct {
	projects projects.Repository
	logger   logging.Logger
}

func NewProjectService(repo projects.Repository, logger logging.Logger) *ProjectService {
	return &ProjectService{
		projects: repo,
		logger:   logger.With("module", "project_service"),
	}
}

type CreateProjectInput struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	CollaboratorEmail string     `json:"collaboratorEmail"`
}

// UpdateProjectInput carries a partial update: nil fields are left
// untouched on the stored document.
type UpdateProjectInput struct {
	Name              *string    `json:"name"`
	Description       *string    `json:"description"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	CollaboratorEmail *string    `json:"collaboratorEmail"`
}

// Create stores a new project owned by the actor. The owner is fixed
// here and never reassigned afterwards.
func (s *ProjectService) Create(ctx context.Context, actor *models.User, in CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", common.ErrValidation)
	}

	project := &models.Project{
		Name:              name,
		Description:       in.Description,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		CollaboratorEmail: strings.ToLower(strings.TrimSpace(in.CollaboratorEmail)),
		Owner:             actor.ID,
		Tasks:             []primitive.ObjectID{},
		CreatedAt:         time.Now(),
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error(ctx, "project insert failed", "error", err)
		return nil, common.ErrInternal
	}
	return created, nil
}

// List returns projects the actor owns plus projects naming the actor
// as collaborator.
func (s *ProjectService) List(ctx context.Context, actor *models.User) ([]models.Project, error) {
	list, err := s.projects.ListForUser(ctx, actor.ID, actor.Email)
	if err != nil {
		s.logger.Error(ctx, "project list failed", "error", err)
		return nil, common.ErrInternal
	}
	return list, nil
}

// Get loads a project the actor may read.
func (s *ProjectService) Get(ctx context.Context, actor *models.User, id string) (*models.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project}, authz.ActionProjectRead); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies the non-nil fields of in to the project. Only the
// owner may update.
func (s *ProjectService) Update(ctx context.Context, actor *models.User, id string, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project}, authz.ActionProjectUpdate); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: project name cannot be empty", common.ErrValidation)
		}
		project.Name = name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.CollaboratorEmail != nil {
		project.CollaboratorEmail = strings.ToLower(strings.TrimSpace(*in.CollaboratorEmail))
	}

	if err := s.projects.Save(ctx, project); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "project save failed", "error", err)
		return nil, common.ErrInternal
	}
	return project, nil
}

// Delete removes the project record. Its tasks are left in place as
// orphans, reachable only by direct id.
func (s *ProjectService) Delete(ctx context.Context, actor *models.User, id string) error {
	project, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project}, authz.ActionProjectDelete); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.logger.Error(ctx, "project delete failed", "error", err)
		return common.ErrInternal
	}
	return nil
}

// load parses the id and fetches the project, translating repository
// errors into the outward taxonomy.
func (s *ProjectService) load(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid project ID", common.ErrInvalidID)
	}

	project, err := s.projects.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("project %w", common.ErrNotFound)
		}
		s.logger.Error(ctx, "project lookup failed", "error", err)
		return nil, common.ErrInternal
	}
	return project, nil
}
