package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind distinguishes the two authenticatable principal kinds.
type Kind string

const (
	KindTrainee Kind = "trainee"
	KindTrainer Kind = "trainer"
)

// User holds the identity fields shared by Trainee and Trainer.
// It is embedded by value in both rather than modelled as a hierarchy:
// the two kinds stay independently evolvable while sharing one
// username namespace.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Username  string             `bson:"username" json:"username"` // Unique across trainees AND trainers
	Password  string             `bson:"password" json:"-"`        // Stored as issued; never expose via JSON
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Trainee is a registered gym member.
type Trainee struct {
	User        `bson:",inline"`
	DateOfBirth *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Address     string     `bson:"address,omitempty" json:"address,omitempty"`

	// TrainerIDs is the trainee's roster. The edge lives on the trainee
	// document only; a trainer's trainees are derived by querying this
	// field, so $addToSet/$pull keep roster merges atomic.
	TrainerIDs []primitive.ObjectID `bson:"trainerIds,omitempty" json:"trainerIds,omitempty"`
}

// Trainer is a coach with exactly one specialization.
type Trainer struct {
	User             `bson:",inline"`
	SpecializationID primitive.ObjectID `bson:"specializationId" json:"specializationId"`
}

// HasTrainer reports whether the given trainer is on the trainee's roster.
func (t *Trainee) HasTrainer(trainerID primitive.ObjectID) bool {
	for _, id := range t.TrainerIDs {
		if id == trainerID {
			return true
		}
	}
	return false
}
