package osuapi

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMapNotFound    = errors.New("beatmap not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrReplayNotFound = errors.New("replay not found")
	ErrInvalidMods    = errors.New("invalid mod string")
	ErrNoUser         = errors.New("user id or username required")
	ErrNoClient       = errors.New("record was not fetched through a client")
)

// APIError is returned when the remote answers with an error payload or a bad status
type APIError struct {
	StatusCode  int
	Message     string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("remote error %v (status %d), description: %v", e.Message, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("remote error %v (status %d)", e.Message, e.StatusCode)
}
