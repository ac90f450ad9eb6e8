package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/common"
	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
)

func newProjectService(t *testing.T) (*ProjectService, *fakeProjectsRepo) {
	t.Helper()
	repo := newFakeProjectsRepo()
	return NewProjectService(repo, newTestLogger(t)), repo
}

func projectActors(t *testing.T) (owner, collaborator, stranger *models.User) {
	t.Helper()
	owner = &models.User{ID: primitive.NewObjectID(), Email: "owner@example.com"}
	collaborator = &models.User{ID: primitive.NewObjectID(), Email: "collab@example.com"}
	stranger = &models.User{ID: primitive.NewObjectID(), Email: "stranger@example.com"}
	return owner, collaborator, stranger
}

func TestProjectCreate_SetsOwnerAndEmptyTasks(t *testing.T) {
	s, _ := newProjectService(t)
	owner, _, _ := projectActors(t)

	project, err := s.Create(context.Background(), owner, CreateProjectInput{
		Name:              "Thesis",
		CollaboratorEmail: "Collab@Example.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if project.Owner != owner.ID {
		t.Fatalf("owner must be the caller")
	}
	if len(project.Tasks) != 0 {
		t.Fatalf("new project must start with no tasks")
	}
	if project.CollaboratorEmail != "collab@example.com" {
		t.Fatalf("collaborator email not normalized: %q", project.CollaboratorEmail)
	}
	if project.StartDate != nil || project.EndDate != nil {
		t.Fatalf("dates must stay unset when omitted")
	}
}

func TestProjectCreate_RequiresName(t *testing.T) {
	s, _ := newProjectService(t)
	owner, _, _ := projectActors(t)

	_, err := s.Create(context.Background(), owner, CreateProjectInput{Name: "   "})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProjectGet_AccessMatrix(t *testing.T) {
	s, repo := newProjectService(t)
	owner, collaborator, stranger := projectActors(t)

	project := repo.add(&models.Project{
		Name:              "Thesis",
		Owner:             owner.ID,
		CollaboratorEmail: collaborator.Email,
	})
	ctx := context.Background()
	id := project.ID.Hex()

	if _, err := s.Get(ctx, owner, id); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := s.Get(ctx, collaborator, id); err != nil {
		t.Fatalf("collaborator read failed: %v", err)
	}
	if _, err := s.Get(ctx, stranger, id); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("stranger read: expected ErrForbidden, got %v", err)
	}
}

func TestProjectGet_InvalidAndMissingIDs(t *testing.T) {
	s, _ := newProjectService(t)
	owner, _, _ := projectActors(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, owner, "not-a-hex-id"); !errors.Is(err, common.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := s.Get(ctx, owner, primitive.NewObjectID().Hex()); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectUpdate_PartialPreservesOmittedFields(t *testing.T) {
	s, repo := newProjectService(t)
	owner, collaborator, _ := projectActors(t)

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	project := repo.add(&models.Project{
		Name:              "Thesis",
		Description:       "original description",
		StartDate:         &start,
		Owner:             owner.ID,
		CollaboratorEmail: collaborator.Email,
	})

	newName := "Thesis v2"
	updated, err := s.Update(context.Background(), owner, project.ID.Hex(), UpdateProjectInput{Name: &newName})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Name != "Thesis v2" {
		t.Fatalf("name not applied: %q", updated.Name)
	}
	if updated.Description != "original description" {
		t.Fatalf("omitted description must be preserved, got %q", updated.Description)
	}
	if updated.StartDate == nil || !updated.StartDate.Equal(start) {
		t.Fatalf("omitted start date must be preserved")
	}
	if updated.CollaboratorEmail != collaborator.Email {
		t.Fatalf("omitted collaborator must be preserved")
	}
	if updated.Owner != owner.ID {
		t.Fatalf("owner must never change")
	}
}

func TestProjectUpdate_OnlyOwner(t *testing.T) {
	s, repo := newProjectService(t)
	owner, collaborator, _ := projectActors(t)

	project := repo.add(&models.Project{
		Name:              "Thesis",
		Owner:             owner.ID,
		CollaboratorEmail: collaborator.Email,
	})

	newName := "Takeover"
	_, err := s.Update(context.Background(), collaborator, project.ID.Hex(), UpdateProjectInput{Name: &newName})
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("collaborator update: expected ErrForbidden, got %v", err)
	}
}

func TestProjectDelete_OnlyOwner(t *testing.T) {
	s, repo := newProjectService(t)
	owner, collaborator, _ := projectActors(t)
	ctx := context.Background()

	project := repo.add(&models.Project{
		Name:              "Thesis",
		Owner:             owner.ID,
		CollaboratorEmail: collaborator.Email,
	})

	if err := s.Delete(ctx, collaborator, project.ID.Hex()); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("collaborator delete: expected ErrForbidden, got %v", err)
	}

	if err := s.Delete(ctx, owner, project.ID.Hex()); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := s.Get(ctx, owner, project.ID.Hex()); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("deleted project must be gone, got %v", err)
	}
}

func TestProjectList_IncludesCollaborations(t *testing.T) {
	s, repo := newProjectService(t)
	owner, collaborator, stranger := projectActors(t)
	ctx := context.Background()

	repo.add(&models.Project{Name: "Owned", Owner: owner.ID})
	repo.add(&models.Project{Name: "Shared", Owner: owner.ID, CollaboratorEmail: collaborator.Email})
	repo.add(&models.Project{Name: "Foreign", Owner: stranger.ID})

	ownerList, err := s.List(ctx, owner)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(ownerList) != 2 {
		t.Fatalf("owner must see 2 projects, got %d", len(ownerList))
	}

	collabList, err := s.List(ctx, collaborator)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(collabList) != 1 || collabList[0].Name != "Shared" {
		t.Fatalf("collaborator must see exactly the shared project, got %v", collabList)
	}
}
