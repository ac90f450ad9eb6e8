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
	"github.com/anvitha-acharya/DevOrgs/internal/server/repositories/tasks"
)

// TaskService implements task CRUD. Task create/delete also maintain
// the owning project's task id list; the two writes are not atomic, so
// a crash between them can leave a dangling reference (last-write-wins,
// no reconciliation pass).
type TaskService struct {
	tasks    tasks.Repository
	projects projects.Repository
	logger   logging.Logger
}

func NewTaskService(taskRepo tasks.Repository, projectRepo projects.Repository, logger logging.Logger) *TaskService {
	return &TaskService{
		tasks:    taskRepo,
		projects: projectRepo,
		logger:   logger.With("module", "task_service"),
	}
}

type CreateTaskInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	AssignedTo  string            `json:"assignedTo"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
}

// UpdateTaskInput carries a partial update: nil fields are left
// untouched. There is deliberately no project field; a task cannot be
// moved to another project through updates.
type UpdateTaskInput struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	AssignedTo  *string            `json:"assignedTo"`
	Status      *models.TaskStatus `json:"status"`
	DueDate     *time.Time         `json:"dueDate"`
}

// Create stores a new task under the project and appends its id to the
// project's task list.
func (s *TaskService) Create(ctx context.Context, actor *models.User, projectID string, in CreateTaskInput) (*models.Task, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project}, authz.ActionTaskCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is required", common.ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}

	assignedTo, err := parseOptionalUserID(in.AssignedTo)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        name,
		Description: in.Description,
		Project:     project.ID,
		AssignedTo:  assignedTo,
		Status:      status,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error(ctx, "task insert failed", "error", err)
		return nil, common.ErrInternal
	}

	// second write of the non-atomic pair
	if err := s.projects.PushTask(ctx, project.ID, created.ID); err != nil {
		s.logger.Error(ctx, "project task list append failed",
			"project_id", project.ID.Hex(), "task_id", created.ID.Hex(), "error", err)
		return nil, common.ErrInternal
	}
	return created, nil
}

// ListForProject returns the project's tasks for owners and
// collaborators.
func (s *TaskService) ListForProject(ctx context.Context, actor *models.User, projectID string) ([]models.Task, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project}, authz.ActionTaskList); err != nil {
		return nil, err
	}

	list, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		s.logger.Error(ctx, "task list failed", "error", err)
		return nil, common.ErrInternal
	}
	return list, nil
}

// Get loads a single task by id. Orphaned tasks (owning project
// deleted) are returned to any authenticated caller, since the
// ownership relations died with the project.
func (s *TaskService) Get(ctx context.Context, actor *models.User, id string) (*models.Task, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, task.Project)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return task, nil
		}
		s.logger.Error(ctx, "project lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	if err := authz.Decide(actor, authz.Resource{Project: project, Task: task}, authz.ActionTaskRead); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the non-nil fields of in to the task. The owning
// project cannot be changed through this path.
func (s *TaskService) Update(ctx context.Context, actor *models.User, id string, in UpdateTaskInput) (*models.Task, error) {
	task, project, err := s.loadTaskWithProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project, Task: task}, authz.ActionTaskUpdate); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: task name cannot be empty", common.ErrValidation)
		}
		task.Name = name
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.AssignedTo != nil {
		assignedTo, err := parseOptionalUserID(*in.AssignedTo)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = assignedTo
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, *in.Status)
		}
		task.Status = *in.Status
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "task save failed", "error", err)
		return nil, common.ErrInternal
	}
	return task, nil
}

// Delete removes the task id from its project's task list, then the
// task record itself.
func (s *TaskService) Delete(ctx context.Context, actor *models.User, id string) error {
	task, project, err := s.loadTaskWithProject(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Decide(actor, authz.Resource{Project: project, Task: task}, authz.ActionTaskDelete); err != nil {
		return err
	}

	if err := s.projects.PullTask(ctx, project.ID, task.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "project task list removal failed",
			"project_id", project.ID.Hex(), "task_id", task.ID.Hex(), "error", err)
		return common.ErrInternal
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.logger.Error(ctx, "task delete failed", "error", err)
		return common.ErrInternal
	}
	return nil
}

func (s *TaskService) loadProject(ctx context.Context, id string) (*models.Project, error) {
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

func (s *TaskService) loadTask(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid task ID", common.ErrInvalidID)
	}

	task, err := s.tasks.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("task %w", common.ErrNotFound)
		}
		s.logger.Error(ctx, "task lookup failed", "error", err)
		return nil, common.ErrInternal
	}
	return task, nil
}

// loadTaskWithProject fetches a task and its owning project for the
// mutation paths. A task whose project is gone cannot be authorized
// against anyone, so it reports not found.
func (s *TaskService) loadTaskWithProject(ctx context.Context, id string) (*models.Task, *models.Project, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	project, err := s.projects.GetByID(ctx, task.Project)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, fmt.Errorf("project %w", common.ErrNotFound)
		}
		s.logger.Error(ctx, "project lookup failed", "error", err)
		return nil, nil, common.ErrInternal
	}
	return task, project, nil
}

func parseOptionalUserID(raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid assignee ID", common.ErrValidation)
	}
	return &oid, nil
}
