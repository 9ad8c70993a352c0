package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimedex/crimedex/internal/jsonx"
)

// Area is the embedded area descriptor of a crime report.
type Area struct {
	ID                int    `bson:"id" json:"id"`
	Name              string `bson:"name" json:"name" validate:"required"`
	ReportingDistrict int    `bson:"reporting_district" json:"reporting_district"`
}

// Status is the embedded investigation status descriptor.
type Status struct {
	Code        string `bson:"code" json:"code" validate:"required"`
	Description string `bson:"description" json:"description"`
}

// Location holds the free-text address and an optional [longitude, latitude]
// pair. Coordinates is nil when the source row had no usable pair; it
// serializes as null, never as a malformed array.
type Location struct {
	Address     string          `bson:"address" json:"address" validate:"required"`
	Coordinates []jsonx.Float64 `bson:"coordinates" json:"coordinates"`
}

// Crime is a single crime-incident report, the root entity of the model.
// Occurrence and report dates are stored as MM/DD/YYYY-prefixed strings and
// compared lexically, never as temporal values.
type Crime struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ReportNumber int64              `bson:"DR_NO" json:"DR_NO" validate:"required"`
	DateReported string             `bson:"date_reported" json:"date_reported" validate:"required"`
	DateOccurred string             `bson:"date_occurred" json:"date_occurred" validate:"required"`
	// TimeOccurred carries no required tag: 0 encodes midnight, a value
	// zero-based required checks cannot distinguish from an absent field.
	TimeOccurred     int      `bson:"time_occurred" json:"time_occurred"`
	Area             Area     `bson:"area" json:"area" validate:"required"`
	CrimeCode        int      `bson:"crime_code" json:"crime_code" validate:"required"`
	CrimeDescription string   `bson:"crime_description" json:"crime_description" validate:"required"`
	Status           Status   `bson:"status" json:"status" validate:"required"`
	Location         Location `bson:"location" json:"location" validate:"required"`
}
