package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrLoadFailure indicates the catalog could not be fetched or parsed
	ErrLoadFailure = errors.New("catalog load failed")

	// ErrInvalidCloudLink indicates a user supplied cloud link does not match the expected pattern
	ErrInvalidCloudLink = errors.New("invalid cloud link")

	// ErrSettingNotFound indicates the requested setting is not stored
	ErrSettingNotFound = errors.New("setting not found")

	// ErrUnknownFilterKey indicates a filter name that maps to no predicate
	ErrUnknownFilterKey = errors.New("unknown filter key")
)
