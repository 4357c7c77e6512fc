package service

import "errors"

var (
	// ErrStoreUnavailable wraps any failure to reach the backing store.
	// Local state is never mutated when it is returned.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotAuthenticated rejects vote mutations issued without a voter
	// identity. No store call is made.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadyVoted is the optimistic local rejection when the latest
	// snapshot already shows the voter on the champion. The store-side
	// set-union stays idempotent either way.
	ErrAlreadyVoted = errors.New("already voted for this champion")

	// ErrDuplicateChampion rejects an add whose name (case-insensitively)
	// matches a champion in the latest snapshot.
	ErrDuplicateChampion = errors.New("champion already exists in this session")

	// ErrEmptyChampionName rejects blank names after trimming.
	ErrEmptyChampionName = errors.New("champion name must not be empty")

	// ErrSessionNotFound signals an operation against an unknown session.
	ErrSessionNotFound = errors.New("voting session not found")

	// ErrChampionNotFound signals an operation against an unknown champion.
	ErrChampionNotFound = errors.New("champion not found")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken rejects a registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)
