package repository

import "errors"

// Expected, caller-recoverable failures. Every mutation either fully
// applies or returns one of these with no partial state visible.
var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInsufficientEnergy  = errors.New("insufficient energy")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrUpgradeNotFound     = errors.New("upgrade not found")
	ErrMaxLevelReached     = errors.New("upgrade already at max level")
	ErrTaskNotFound        = errors.New("task not found")
	ErrAlreadyClaimed      = errors.New("task already claimed")
	ErrAlreadyClaimedToday = errors.New("daily reward already claimed today")
	ErrRequirementNotMet   = errors.New("task requirement not met")
)
