package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match is a persisted pairwise compatibility result. The live matching
// endpoint recomputes from scratch and never writes this collection, so reads
// come back empty unless rows are inserted out of band.
type Match struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User1              primitive.ObjectID `json:"user1" bson:"user1"`
	User2              primitive.ObjectID `json:"user2" bson:"user2"`
	CompatibilityScore int                `json:"compatibilityScore" bson:"compatibilityScore"`
	CommonSubjects     []string           `json:"commonSubjects" bson:"commonSubjects"`
	CommonTimeSlots    []string           `json:"commonTimeSlots" bson:"commonTimeSlots"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PopulatedMatch is a persisted match with both user documents resolved
type PopulatedMatch struct {
	ID                 primitive.ObjectID `json:"id"`
	User1              User               `json:"user1"`
	User2              User               `json:"user2"`
	CompatibilityScore int                `json:"compatibilityScore"`
	CommonSubjects     []string           `json:"commonSubjects"`
	CommonTimeSlots    []string           `json:"commonTimeSlots"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// MatchResult is one ranked entry returned by the live matching endpoint
type MatchResult struct {
	User               User     `json:"user"`
	CommonSubjects     []string `json:"commonSubjects"`
	CommonTimeSlots    []string `json:"commonTimeSlots"`
	CompatibilityScore int      `json:"compatibilityScore"`
}
