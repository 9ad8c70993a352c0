package domain

import "errors"

var (
	// ErrNotFound signals a missing crime record.
	ErrNotFound = errors.New("crime record not found")
	// ErrInvalidID signals a malformed crime reference.
	ErrInvalidID = errors.New("invalid crime_id format")
	// ErrInvalidDate signals a date parameter that is not MM/DD/YYYY.
	ErrInvalidDate = errors.New("invalid date format, use MM/DD/YYYY")
	// ErrInvalidPayload signals a request body that failed validation.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrDuplicateVote signals a second vote by the same badge on the same crime.
	ErrDuplicateVote = errors.New("officer has already upvoted this crime record")
	// ErrDuplicateReport signals a DR_NO collision on insert.
	ErrDuplicateReport = errors.New("crime report already exists")
)
