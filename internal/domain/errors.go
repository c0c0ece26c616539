package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderItemNotFound  = errors.New("order item not found")
	ErrCaseNotFound       = errors.New("violation case not found")
	ErrResolutionNotFound = errors.New("dispute resolution not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("caller is not a party of the order")
	ErrInvalidCaseStatus  = errors.New("invalid case status for this operation")
	ErrDuplicateOpenCase  = errors.New("item already has an open violation case")
	ErrInvalidEvidence    = errors.New("invalid evidence file")
	ErrCaseNotSettleable  = errors.New("case is not in a settlement-eligible state")
)
