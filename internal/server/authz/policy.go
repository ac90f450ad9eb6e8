// Package authz is the single decision point for resource access.
// Every handler consults Decide instead of repeating ownership checks,
// so the owner/collaborator/assignee rules cannot drift between
// endpoints.
//
// Roles (student/teacher/admin) are carried on the actor but take no
// part in any decision today; if role-based rules are ever introduced,
// this package is where they belong.
package authz

import (
	"github.com/anvitha-acharya/DevOrgs/internal/common"
	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
)

type Action string

const (
	ActionProjectRead   Action = "project:read"
	ActionProjectUpdate Action = "project:update"
	ActionProjectDelete Action = "project:delete"
	ActionTaskCreate    Action = "task:create"
	ActionTaskList      Action = "task:list"
	ActionTaskRead      Action = "task:read"
	ActionTaskUpdate    Action = "task:update"
	ActionTaskDelete    Action = "task:delete"
)

// Resource is the target of a decision. Project must always be set;
// Task is set only for the per-task actions, where the assignee
// relation matters.
type Resource struct {
	Project *models.Project
	Task    *models.Task
}

// Decide returns nil when the actor may perform action on the resource
// and common.ErrForbidden otherwise. Unknown actions are denied.
func Decide(actor *models.User, res Resource, action Action) error {
	if actor == nil || res.Project == nil {
		return common.ErrForbidden
	}

	isOwner := res.Project.IsOwner(actor.ID)
	isCollaborator := res.Project.IsCollaborator(actor.Email)

	switch action {
	case ActionProjectRead:
		if isOwner || isCollaborator {
			return nil
		}
	case ActionProjectUpdate, ActionProjectDelete:
		// Collaborators may view but never modify the project itself.
		if isOwner {
			return nil
		}
	case ActionTaskCreate, ActionTaskList, ActionTaskDelete:
		if isOwner || isCollaborator {
			return nil
		}
	case ActionTaskRead, ActionTaskUpdate:
		if isOwner || isCollaborator {
			return nil
		}
		if res.Task != nil && res.Task.IsAssignee(actor.ID) {
			return nil
		}
	}

	return common.ErrForbidden
}
