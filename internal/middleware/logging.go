package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// ErrorKindHeader is the error metadata key that carries the ledger error
// kind of a failed call.
const ErrorKindHeader = "Ledger-Error-Kind"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, request ID and duration. Failed calls also log the
// Connect code, the message and the ErrorKindHeader value when the handler
// set one. Install it after RequestID so the ID is already on the context.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			requestID := GetRequestID(ctx)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					attrs := []any{
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"request_id", requestID,
						"duration_ms", duration,
					}
					if kind := connectErr.Meta().Get(ErrorKindHeader); kind != "" {
						attrs = append(attrs, "kind", kind)
					}
					slog.WarnContext(ctx, "RPC error", attrs...)
				} else {
					slog.ErrorContext(ctx, "RPC error",
						"procedure", procedure,
						"error", err,
						"request_id", requestID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.InfoContext(ctx, "RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
