package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project groups tasks under a single owner. Owner is set at creation
// and never reassigned. Tasks mirrors the ids of the project's tasks and
// is maintained by task create/delete.
type Project struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Description       string               `bson:"description,omitempty" json:"description,omitempty"`
	StartDate         *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate           *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CollaboratorEmail string               `bson:"collaboratorEmail,omitempty" json:"collaboratorEmail,omitempty"`
	Owner             primitive.ObjectID   `bson:"owner" json:"owner"`
	Tasks             []primitive.ObjectID `bson:"tasks" json:"tasks"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
}

// IsOwner reports whether the given user id owns the project.
func (p *Project) IsOwner(userID primitive.ObjectID) bool {
	return p.Owner == userID
}

// IsCollaborator reports whether the given email is the project's
// collaborator. An empty collaboratorEmail never matches.
func (p *Project) IsCollaborator(email string) bool {
	return p.CollaboratorEmail != "" && p.CollaboratorEmail == email
}
