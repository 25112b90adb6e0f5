// services/errors.go - Domain rule errors
//
// These are returned as plain values so handlers can map them with
// errors.Is. They cover business-rule conflicts only; store failures
// pass through untouched.
package services

import "errors"

var (
	ErrTeamExists           = errors.New("team with the same code and day already exists")
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamInactive         = errors.New("team is inactive")
	ErrOverCollection       = errors.New("collected amount exceeds total amount for the team")
	ErrAmountBelowCollected = errors.New("total amount cannot be less than already collected amount")
	ErrWeekBelowRecorded    = errors.New("total week cannot be less than the highest recorded transaction week")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrAadharTaken          = errors.New("aadhar number already exists in an active team")
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
)
