package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/platelog/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and counts it in m. It logs the procedure name, duration, and any error
// codes/messages. Install it outside RequireAuth so rejected calls are logged.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()

			var connectErr *connect.Error
			switch {
			case err == nil:
				m.ObserveRPC(procedure, "ok")
				slog.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
			case errors.As(err, &connectErr):
				m.ObserveRPC(procedure, connectErr.Code().String())
				slog.Warn("RPC error",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"duration_ms", duration,
				)
			default:
				m.ObserveRPC(procedure, connect.CodeUnknown.String())
				slog.Error("RPC error",
					"procedure", procedure,
					"error", err,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
