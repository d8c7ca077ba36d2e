// Package sentinel holds the storage facts every store reports the same way,
// whichever backend it runs on. Services match them with errors.Is and turn
// them into domain errors or ledger outcomes.
package sentinel

import "errors"

var (
	// ErrNotFound: no row matched.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyUsed: a unique or partial unique index rejected the write.
	ErrAlreadyUsed = errors.New("already used")
)
