package server

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the calendar service over a gRPC connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) call(ctx context.Context, method string, in map[string]interface{}) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve calls Calendar.Resolve
func (c *Client) Resolve(ctx context.Context, req map[string]interface{}) (*structpb.Struct, error) {
	return c.call(ctx, MethodResolve, req)
}

// Validate calls Calendar.Validate
func (c *Client) Validate(ctx context.Context, req map[string]interface{}) (*structpb.Struct, error) {
	return c.call(ctx, MethodValidate, req)
}

// Shift calls Calendar.Shift
func (c *Client) Shift(ctx context.Context, req map[string]interface{}) (*structpb.Struct, error) {
	return c.call(ctx, MethodShift, req)
}

// Diff calls Calendar.Diff
func (c *Client) Diff(ctx context.Context, req map[string]interface{}) (*structpb.Struct, error) {
	return c.call(ctx, MethodDiff, req)
}

// Health calls Calendar.Health
func (c *Client) Health(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, MethodHealth, map[string]interface{}{})
}

// Step calls Calendar.Step and hands every streamed date to fn
func (c *Client) Step(ctx context.Context, req map[string]interface{}, fn func(*structpb.Struct) error) error {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := c.conn.NewStream(ctx, &CalendarServiceDesc.Streams[0], MethodStep)
	if err != nil {
		return err
	}
	if err := stream.SendMsg(in); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}

	for {
		msg := new(structpb.Struct)
		if err := stream.RecvMsg(msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
}
