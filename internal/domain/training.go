package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training is an immutable record of one session between a trainee and
// a trainer. Trainings are append-only: created once, never updated,
// removed only when the owning principal is deleted.
type Training struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TraineeID      primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	TrainerID      primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	TrainingTypeID primitive.ObjectID `bson:"trainingTypeId" json:"trainingTypeId"`
	Name           string             `bson:"name" json:"name"`
	Date           time.Time          `bson:"date" json:"date"`
	Duration       int                `bson:"duration" json:"duration"` // Minutes
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
