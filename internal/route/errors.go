package route

import (
	"errors"
	"fmt"
)

// Sentinel errors for route operations.
var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("route: invalid configuration")

	// ErrCyclicPath is returned when predecessor links loop back on themselves.
	ErrCyclicPath = errors.New("route: predecessor chain contains a cycle")

	// ErrInvalidState is returned when a predecessor index points outside the arena.
	ErrInvalidState = errors.New("route: predecessor index out of range")
)

// Configuration error codes.
const (
	CodeInvalidSize         = "INVALID_SIZE"
	CodeStartOutOfBounds    = "START_OUT_OF_BOUNDS"
	CodeGoalOutOfBounds     = "GOAL_OUT_OF_BOUNDS"
	CodeObstacleOutOfBounds = "OBSTACLE_OUT_OF_BOUNDS"
	CodeStartBlocked        = "START_BLOCKED"
	CodeGoalBlocked         = "GOAL_BLOCKED"
	CodeInvalidCosts        = "INVALID_COSTS"
	CodeInvalidFacing       = "INVALID_FACING"
	CodeInvalidTieBreak     = "INVALID_TIE_BREAK"
)

// ConfigurationError describes grid or search input that cannot be used.
type ConfigurationError struct {
	Code    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrConfiguration) match any configuration error.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configError(code, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
