package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

// Kind is a stable identifier for a class of ledger failure. Callers map
// kinds to transport status codes.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindDuplicateMembership Kind = "duplicate_membership"
	KindDuplicateEmail      Kind = "duplicate_email"
	KindDuplicateFriend     Kind = "duplicate_friend"
	KindNotAMember          Kind = "not_a_member"
	KindInvalidAmount       Kind = "invalid_amount"
	KindSameParty           Kind = "same_party"
	KindSplitMismatch       Kind = "split_mismatch"
	KindInvalidArgument     Kind = "invalid_argument"
	KindStorageFailure      Kind = "storage_failure"
)

// Sentinels for use with errors.Is. Matching is by kind only.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrDuplicateMembership = &Error{Kind: KindDuplicateMembership}
	ErrDuplicateEmail      = &Error{Kind: KindDuplicateEmail}
	ErrDuplicateFriend     = &Error{Kind: KindDuplicateFriend}
	ErrNotAMember          = &Error{Kind: KindNotAMember}
	ErrInvalidAmount       = &Error{Kind: KindInvalidAmount}
	ErrSameParty           = &Error{Kind: KindSameParty}
	ErrSplitMismatch       = &Error{Kind: KindSplitMismatch}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrStorageFailure      = &Error{Kind: KindStorageFailure}
)

// Error is the error type returned by every ledger operation.
//
// Message is safe to show to callers. Err holds the underlying diagnostic,
// if any, and is only reachable through errors.Unwrap; it never appears in
// Error().
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err. Errors that did not originate in this
// package report KindStorageFailure; nil reports the empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindStorageFailure
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func invalidArgument(format string, args ...any) *Error {
	return newError(KindInvalidArgument, format, args...)
}

// fromStorage classifies an error returned by the record store. Missing rows
// become NotFound with msg, membership failures become NotAMember; anything
// else is a StorageFailure carrying the
// original error as its diagnostic.
func fromStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	var nm *storage.NotAMemberError
	if errors.As(err, &nm) {
		return &Error{Kind: KindNotAMember, Message: nm.Error(), Err: err}
	}
	if errors.Is(err, storage.ErrNotFound) {
		return &Error{Kind: KindNotFound, Message: msg, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindStorageFailure, Message: "request cancelled", Err: err}
	}
	return &Error{Kind: KindStorageFailure, Message: "storage operation failed", Err: err}
}
