package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimedex/crimedex/internal/jsonx"
)

// Victim holds the optional victim attributes of a crime report. At most one
// victim document exists per crime; it is created only when the source row
// carries at least one of the three fields.
type Victim struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CrimeID primitive.ObjectID `bson:"crime_id" json:"crime_id"`
	Age     *jsonx.Float64     `bson:"age" json:"age"`
	Sex     *string            `bson:"sex" json:"sex"`
	Descent *string            `bson:"descent" json:"descent"`
}

// HasData reports whether any victim attribute is present.
func (v Victim) HasData() bool {
	return v.Age != nil || v.Sex != nil || v.Descent != nil
}
