package repository

import (
	"errors"
	"fmt"
)

// ErrStorage marks failures of the storage engine itself (connection loss,
// constraint violations that were not mapped to a domain outcome).
var ErrStorage = errors.New("storage failure")

// StorageError wraps err as an ErrStorage for the named operation.
// A nil err stays nil.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
