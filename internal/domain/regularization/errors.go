package regularization

import "errors"

var (
	ErrDuplicatePendingRequest = errors.New("you already have a pending correction request for this date")
	ErrRequestNotFound         = errors.New("regularization request not found")
	ErrAlreadyResolved         = errors.New("regularization request has already been approved or rejected")
	ErrInvalidDecision         = errors.New("decision must be approved or rejected")
	ErrUnauthorized            = errors.New("you are not allowed to act on this regularization request")
)
