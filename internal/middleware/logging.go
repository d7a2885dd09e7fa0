package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, request ID, peer, duration and outcome. Client mistakes
// (invalid argument, not found) log at WARN, everything else that fails at
// ERROR. A nil logger uses slog.Default. Install it after RequestID so the ID
// is already in the context.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			log := logger
			if log == nil {
				log = slog.Default()
			}
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("request_id", GetRequestID(ctx)),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				log.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, slog.String("code", code.String()))
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				attrs = append(attrs, slog.String("error", connectErr.Message()))
			} else {
				attrs = append(attrs, slog.Any("error", err))
			}
			log.LogAttrs(ctx, levelFor(code), "RPC error", attrs...)
			return resp, err
		}
	}
}

func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeCanceled:
		return slog.LevelWarn
	}
	return slog.LevelError
}
