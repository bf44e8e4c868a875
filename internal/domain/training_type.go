package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingType is a named category such as "Yoga". It doubles as a
// trainer's specialization and a training's classification.
type TrainingType struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"` // Should be unique
}
