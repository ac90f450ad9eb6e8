package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/common"
	"github.com/anvitha-acharya/DevOrgs/internal/logging"
	"github.com/anvitha-acharya/DevOrgs/internal/server/config"
	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
)

// --- shared test helpers ---

func newTestLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
}

// fakeUsersRepo is an in-memory users.Repository.
type fakeUsersRepo struct {
	byID      map[primitive.ObjectID]*models.User
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

// fakeProjectsRepo is an in-memory projects.Repository that keeps the
// task id list bookkeeping observable.
type fakeProjectsRepo struct {
	byID map[primitive.ObjectID]*models.Project
}

func newFakeProjectsRepo() *fakeProjectsRepo {
	return &fakeProjectsRepo{byID: map[primitive.ObjectID]*models.Project{}}
}

func (f *fakeProjectsRepo) add(p *models.Project) *models.Project {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Tasks == nil {
		p.Tasks = []primitive.ObjectID{}
	}
	f.byID[p.ID] = p
	return p
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	return f.add(p), nil
}

func (f *fakeProjectsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	if p, ok := f.byID[id]; ok {
		cp := *p
		cp.Tasks = append([]primitive.ObjectID{}, p.Tasks...)
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProjectsRepo) ListForUser(ctx context.Context, userID primitive.ObjectID, email string) ([]models.Project, error) {
	list := []models.Project{}
	for _, p := range f.byID {
		if p.Owner == userID || (p.CollaboratorEmail != "" && p.CollaboratorEmail == email) {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (f *fakeProjectsRepo) Save(ctx context.Context, p *models.Project) error {
	if _, ok := f.byID[p.ID]; !ok {
		return common.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProjectsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProjectsRepo) PushTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	p, ok := f.byID[projectID]
	if !ok {
		return common.ErrNotFound
	}
	p.Tasks = append(p.Tasks, taskID)
	return nil
}

func (f *fakeProjectsRepo) PullTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	p, ok := f.byID[projectID]
	if !ok {
		return common.ErrNotFound
	}
	kept := p.Tasks[:0]
	for _, id := range p.Tasks {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	p.Tasks = kept
	return nil
}

// fakeTasksRepo is an in-memory tasks.Repository.
type fakeTasksRepo struct {
	byID map[primitive.ObjectID]*models.Task
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{byID: map[primitive.ObjectID]*models.Task{}}
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.ID = primitive.NewObjectID()
	f.byID[task.ID] = task
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	if task, ok := f.byID[id]; ok {
		cp := *task
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeTasksRepo) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	list := []models.Task{}
	for _, task := range f.byID {
		if task.Project == projectID {
			list = append(list, *task)
		}
	}
	return list, nil
}

func (f *fakeTasksRepo) Save(ctx context.Context, task *models.Task) error {
	if _, ok := f.byID[task.ID]; !ok {
		return common.ErrNotFound
	}
	f.byID[task.ID] = task
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
