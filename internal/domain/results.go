package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Aggregation result shapes. The bson tags match the pipeline projections,
// the json tags match the API response contract.

// CodeCount is one row of the counts-by-crime-code query.
type CodeCount struct {
	CrimeCode int `bson:"_id" json:"crime_code"`
	Count     int `bson:"count" json:"count"`
}

// DailyCount is one calendar day of the daily-count series. Days with no
// matching reports appear with a zero count.
type DailyCount struct {
	Date        string `json:"date"`
	ReportCount int    `json:"report_count"`
}

// CrimeCount pairs a crime description with its report count.
type CrimeCount struct {
	Crime string `bson:"crime" json:"crime"`
	Count int    `bson:"count" json:"count"`
}

// AreaCrimes holds the top crimes of one area, most frequent first.
type AreaCrimes struct {
	Area   string       `bson:"area" json:"area"`
	Crimes []CrimeCount `bson:"crimes" json:"crimes"`
}

// WeaponCount pairs a weapon description with its usage count.
type WeaponCount struct {
	Weapon string `bson:"weapon" json:"weapon"`
	Count  int    `bson:"count" json:"count"`
}

// AreaWeapons holds the weapons used in one area, most used first.
type AreaWeapons struct {
	Area    string        `bson:"area" json:"area"`
	Weapons []WeaponCount `bson:"weapons" json:"weapons"`
}

// AreaName is the projected area subdocument of a top-upvoted row.
type AreaName struct {
	Name string `bson:"name" json:"name"`
}

// TopUpvotedReport is one row of the top-upvoted-reports query.
type TopUpvotedReport struct {
	ReportNumber     int64    `bson:"DR_NO" json:"DR_NO"`
	CrimeDescription string   `bson:"crime_description" json:"crime_description"`
	Area             AreaName `bson:"area" json:"area"`
	DateOccurred     string   `bson:"date_occurred" json:"date_occurred"`
	UpvoteCount      int      `bson:"upvote_count" json:"upvote_count"`
}

// OfficerActivity is one row of the top-active-officers leaderboard. Name and
// email are the first-seen values for the badge.
type OfficerActivity struct {
	BadgeNumber string `bson:"badge_number" json:"badge_number"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	UpvoteCount int    `bson:"upvote_count" json:"upvote_count"`
}

// OfficerAreaCoverage is one row of the officers-by-area-breadth leaderboard.
type OfficerAreaCoverage struct {
	BadgeNumber     string `bson:"badge_number" json:"badge_number"`
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email" json:"email"`
	UniqueAreaCount int    `bson:"unique_area_count" json:"unique_area_count"`
}

// MultiBadgeUpvote is one detected anomaly: a single email that upvoted the
// same crime under more than one badge number.
type MultiBadgeUpvote struct {
	CrimeID          primitive.ObjectID `bson:"crime_id" json:"crime_id"`
	Email            string             `bson:"email" json:"email"`
	BadgeNumbers     []string           `bson:"badge_numbers" json:"badge_numbers"`
	CrimeDescription string             `bson:"crime_description" json:"crime_description"`
	DateOccurred     string             `bson:"date_occurred" json:"date_occurred"`
	Area             string             `bson:"area" json:"area"`
}

// OfficerArea is one distinct area touched by a named officer's upvotes.
type OfficerArea struct {
	Area string `bson:"area" json:"area"`
}
