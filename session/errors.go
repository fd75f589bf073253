package session

import "errors"

var (
	// ErrIdentityRequired indicates a contest was started without an identity.
	ErrIdentityRequired = errors.New("username is required")
	// ErrSessionActive indicates a contest already exists and must be reset first.
	ErrSessionActive = errors.New("a contest is already in progress or awaiting reset")
	// ErrSessionNotActive indicates an operation needs a running contest.
	ErrSessionNotActive = errors.New("no contest is running")
	// ErrNoSession indicates there is no contest to show results for.
	ErrNoSession = errors.New("no contest found")
	// ErrEmptyContest indicates the service returned no problems.
	ErrEmptyContest = errors.New("contest service returned no problems")
	// ErrInvalidPhase indicates a phase value is invalid.
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrSessionGone indicates the stored contest was reset, replaced or
	// finished by another process.
	ErrSessionGone = errors.New("contest was reset or finished elsewhere")
	// ErrMalformedState indicates a durable record is inconsistent.
	ErrMalformedState = errors.New("malformed contest state")
)
