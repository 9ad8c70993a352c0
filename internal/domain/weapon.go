package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Weapon describes the weapon attached to a crime report. Created only when
// the source row carries a weapon code.
type Weapon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CrimeID     primitive.ObjectID `bson:"crime_id" json:"crime_id"`
	Code        int                `bson:"weapon_code" json:"weapon_code"`
	Description string             `bson:"weapon_description" json:"weapon_description"`
}
