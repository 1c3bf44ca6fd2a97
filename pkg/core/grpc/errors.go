package grpc

import (
	"context"
	"errors"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusCode returns the gRPC code for a Foundation error code
func StatusCode(code mdwerror.Code) codes.Code {
	switch code {
	case mdwerror.CodeInvalidDate, mdwerror.CodeInvalidArgumentType, mdwerror.CodeInvalidInput:
		return codes.InvalidArgument
	case mdwerror.CodeNotFound:
		return codes.NotFound
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeServiceUnavailable, mdwerror.CodeConnectionFailed:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error. Errors that already carry
// a status pass through; Foundation errors keep their message and code in
// the status message.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) {
		return status.Error(StatusCode(mdwErr.Code()), string(mdwErr.Code())+": "+mdwErr.Message())
	}
	return status.Error(codes.Internal, "internal server error")
}
