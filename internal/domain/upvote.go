package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Officer identifies the voter on an upvote record. The badge number is the
// identity used in the uniqueness key; the email deliberately is not, which
// is what makes multi-badge anomalies detectable.
type Officer struct {
	BadgeNumber string `bson:"badge_number" json:"badge_number"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
}

// Upvote records one officer vote on one crime report. The pair
// (CrimeID, Officer.BadgeNumber) is unique, enforced by a storage-level
// compound index.
type Upvote struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CrimeID  primitive.ObjectID `bson:"crime_id" json:"crime_id"`
	Officer  Officer            `bson:"officer" json:"officer"`
	VoteDate string             `bson:"upvote_date" json:"upvote_date"` // YYYY-MM-DD, UTC day
}
