package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that writes one record per RPC.
// Place it inside RequireSession so the session ID is known; public procedures
// log an empty session_id.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("session_id", GetSessionID(ctx)),
				slog.String("protocol", req.Peer().Protocol),
				slog.String("peer", req.Peer().Addr),
				slog.Duration("duration", time.Since(start)),
			}
			msg := "RPC ok"
			if err != nil {
				msg = "RPC failed"
				attrs = append(attrs,
					slog.String("code", connect.CodeOf(err).String()),
					slog.String("error", errorMessage(err)),
				)
			}
			slog.LogAttrs(ctx, levelFor(err), msg, attrs...)

			return resp, err
		}
	}
}

// levelFor logs caller mistakes at WARN and server faults at ERROR.
func levelFor(err error) slog.Level {
	if err == nil {
		return slog.LevelInfo
	}
	switch connect.CodeOf(err) {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// errorMessage drops the "code: " prefix Connect errors carry.
func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
