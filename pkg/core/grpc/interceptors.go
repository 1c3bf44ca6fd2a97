package grpc

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Context keys for request metadata
type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	RequestIDHeader string     = "x-request-id"
)

// RecoveryInterceptor recovers from panics in gRPC handlers
func RecoveryInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC panic recovered",
					"request_id", GetRequestID(ctx),
					"method", info.FullMethod,
					"panic", r,
					"stack", string(debug.Stack()),
				)
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor recovers from panics in streaming gRPC handlers
func StreamRecoveryInterceptor(logger *logging.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC stream panic recovered",
					"request_id", GetRequestID(ss.Context()),
					"method", info.FullMethod,
					"panic", r,
					"stack", string(debug.Stack()),
				)
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(srv, ss)
	}
}

// LoggingInterceptor logs gRPC requests
func LoggingInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		logRequest(logger, "gRPC request", GetRequestID(ctx), info.FullMethod, start, err)
		return resp, err
	}
}

// StreamLoggingInterceptor logs gRPC streaming requests
func StreamLoggingInterceptor(logger *logging.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		err := handler(srv, ss)

		logRequest(logger, "gRPC stream request", GetRequestID(ss.Context()), info.FullMethod, start, err)
		return err
	}
}

// logRequest logs a finished call. Failures caused by the caller are
// warnings; anything else is an error, flagged for alerting when its
// severity asks for it.
func logRequest(logger *logging.Logger, msg, requestID, method string, start time.Time, err error) {
	kv := []interface{}{
		"request_id", requestID,
		"method", method,
		"status", status.Code(ToStatus(err)).String(),
		"duration_ms", float64(time.Since(start).Microseconds()) / 1000,
	}
	if err == nil {
		logger.Info(msg, kv...)
		return
	}

	code := mdwerror.GetCode(err)
	kv = append(kv, "error", err, "error_code", code.String(), "category", code.Category())
	if mdwerror.GetSeverity(err).ShouldAlert() {
		kv = append(kv, "alert", true)
	}
	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) {
		if frames := mdwErr.StackTrace(); len(frames) > 0 {
			kv = append(kv, "origin", fmt.Sprintf("%s:%d", frames[0].Function, frames[0].Line))
		}
	}

	if code.IsCallerError() {
		logger.Warn(msg, kv...)
		return
	}
	logger.Error(msg, kv...)
}

// ErrorMappingInterceptor turns handler errors into gRPC status errors
func ErrorMappingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		return resp, ToStatus(err)
	}
}

// StreamErrorMappingInterceptor turns stream handler errors into gRPC
// status errors
func StreamErrorMappingInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return ToStatus(handler(srv, ss))
	}
}

// RequestIDInterceptor adds a request ID to the context and echoes it in
// the response header
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := ensureRequestID(ctx)
		ctx = WithRequestID(ctx, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		return handler(ctx, req)
	}
}

// StreamRequestIDInterceptor is RequestIDInterceptor for streams
func StreamRequestIDInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		requestID := ensureRequestID(ss.Context())
		_ = ss.SetHeader(metadata.Pairs(RequestIDHeader, requestID))

		return handler(srv, &requestIDStream{
			ServerStream: ss,
			ctx:          WithRequestID(ss.Context(), requestID),
		})
	}
}

// requestIDStream overrides the context of a server stream
type requestIDStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *requestIDStream) Context() context.Context {
	return s.ctx
}

func ensureRequestID(ctx context.Context) string {
	if requestID := extractRequestID(ctx); requestID != "" {
		return requestID
	}
	return uuid.New().String()
}

// ClientRequestIDInterceptor propagates request ID to outgoing requests
func ClientRequestIDInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(outgoingRequestID(ctx), method, req, reply, cc, opts...)
	}
}

// ClientStreamRequestIDInterceptor propagates request ID to outgoing streams
func ClientStreamRequestIDInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(outgoingRequestID(ctx), desc, cc, method, opts...)
	}
}

func outgoingRequestID(ctx context.Context) context.Context {
	requestID := GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)
}

// ClientTimeoutInterceptor applies a default deadline to unary calls that
// have none
func ClientTimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if _, ok := ctx.Deadline(); !ok && timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// ClientLoggingInterceptor logs outgoing gRPC requests
func ClientLoggingInterceptor(logger *logging.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()

		err := invoker(ctx, method, req, reply, cc, opts...)

		logger.Debug("gRPC client request",
			"method", method,
			"status", status.Code(err).String(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000,
		)

		return err
	}
}

// ClientStreamLoggingInterceptor logs outgoing streaming gRPC requests
func ClientStreamLoggingInterceptor(logger *logging.Logger) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		start := time.Now()

		stream, err := streamer(ctx, desc, cc, method, opts...)

		logger.Debug("gRPC client stream request",
			"method", method,
			"status", status.Code(err).String(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000,
		)

		return stream, err
	}
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return extractRequestID(ctx)
}

// extractRequestID extracts request ID from incoming metadata
func extractRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(RequestIDHeader)
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
