package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Provider and resolution errors
	ErrUnknownProvider    = fmt.Errorf("unknown provider code")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrResolutionFailed   = fmt.Errorf("resolution failed")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Playlist errors
	ErrEmptyPlaylist    = fmt.Errorf("playlist is empty")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
