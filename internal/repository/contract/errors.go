package contract

import "errors"

// ErrChampionNotFound reports a vote mutation that targeted a champion id
// absent from the session. Callers translate it into their own not-found
// error; it must never be swallowed as a successful no-op.
var ErrChampionNotFound = errors.New("champion not found")
