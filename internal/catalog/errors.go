package catalog

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every failure to obtain data from the remote source:
// the collection list, any detail record of a bulk load, or a single record.
var ErrFetchFailed = errors.New("fetch failed")

// ErrNotLoaded is returned by a Library that has no successful load yet.
var ErrNotLoaded = errors.New("collection not loaded")

// FetchError describes which fetch failed. errors.Is(err, ErrFetchFailed)
// holds for every FetchError.
type FetchError struct {
	Op  string // "list" or "detail"
	Ref string // record name or id; empty for the list
	Err error
}

func (e *FetchError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %s: %v", ErrFetchFailed, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", ErrFetchFailed, e.Op, e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
