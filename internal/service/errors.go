package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/khushthecoder/Expense-Splitter/internal/ledger"
	"github.com/khushthecoder/Expense-Splitter/internal/middleware"
)

// ErrorKindHeader carries the ledger error kind on failed responses.
const ErrorKindHeader = middleware.ErrorKindHeader

var kindCodes = map[ledger.Kind]connect.Code{
	ledger.KindNotFound:            connect.CodeNotFound,
	ledger.KindDuplicateMembership: connect.CodeAlreadyExists,
	ledger.KindDuplicateEmail:      connect.CodeAlreadyExists,
	ledger.KindDuplicateFriend:     connect.CodeAlreadyExists,
	ledger.KindNotAMember:          connect.CodeFailedPrecondition,
	ledger.KindInvalidAmount:       connect.CodeInvalidArgument,
	ledger.KindSameParty:           connect.CodeInvalidArgument,
	ledger.KindSplitMismatch:       connect.CodeInvalidArgument,
	ledger.KindInvalidArgument:     connect.CodeInvalidArgument,
	ledger.KindStorageFailure:      connect.CodeInternal,
}

// toConnectError maps a ledger error to a Connect error with the kind in the
// response metadata.
func toConnectError(err error) *connect.Error {
	kind := ledger.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = connect.CodeInternal
	}
	switch {
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}

	// Only the kind and message reach the client; the wrapped diagnostic
	// stays server side.
	cerr := connect.NewError(code, errors.New(err.Error()))
	cerr.Meta().Set(ErrorKindHeader, string(kind))
	return cerr
}

// fail logs a failed operation and converts err for the client. Storage
// failures are logged with their diagnostic at error level.
func fail(ctx context.Context, op string, err error, attrs ...any) error {
	attrs = append(attrs, "kind", ledger.KindOf(err), "error", err)
	if ledger.KindOf(err) == ledger.KindStorageFailure {
		slog.ErrorContext(ctx, op+" failed", append(attrs, "cause", errors.Unwrap(err))...)
	} else {
		slog.WarnContext(ctx, op+" rejected", attrs...)
	}
	return toConnectError(err)
}

// KindFromError reads the ledger error kind a server attached to err.
func KindFromError(err error) ledger.Kind {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return ""
	}
	return ledger.Kind(cerr.Meta().Get(ErrorKindHeader))
}
