package analysis

import "errors"

var (
	// ErrNoBaseline means no practice session of an event qualified as a dry baseline
	ErrNoBaseline = errors.New("no dry baseline session")

	// ErrEmptySeason means the season produced no wet-session results at all
	ErrEmptySeason = errors.New("no wet-session data for season")
)
