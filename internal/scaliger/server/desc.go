package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the full gRPC name of the calendar service
const ServiceName = "scaliger.v1.Calendar"

// Full method names
const (
	MethodResolve  = "/" + ServiceName + "/Resolve"
	MethodValidate = "/" + ServiceName + "/Validate"
	MethodShift    = "/" + ServiceName + "/Shift"
	MethodDiff     = "/" + ServiceName + "/Diff"
	MethodHealth   = "/" + ServiceName + "/Health"
	MethodStep     = "/" + ServiceName + "/Step"
)

// CalendarServer is the server API of the calendar service. Every message
// is a google.protobuf.Struct.
type CalendarServer interface {
	Resolve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Shift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Diff(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Health(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Step(*structpb.Struct, CalendarStepServer) error
}

// CalendarStepServer is the server side of the Step stream
type CalendarStepServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type calendarStepServer struct {
	grpc.ServerStream
}

func (x *calendarStepServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterCalendarServer registers srv on s
func RegisterCalendarServer(s grpc.ServiceRegistrar, srv CalendarServer) {
	s.RegisterService(&CalendarServiceDesc, srv)
}

func unaryHandler(method string, call func(CalendarServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalendarServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CalendarServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func stepHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(CalendarServer).Step(in, &calendarStepServer{stream})
}

// CalendarServiceDesc is the grpc.ServiceDesc of the calendar service
var CalendarServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: unaryHandler(MethodResolve, CalendarServer.Resolve)},
		{MethodName: "Validate", Handler: unaryHandler(MethodValidate, CalendarServer.Validate)},
		{MethodName: "Shift", Handler: unaryHandler(MethodShift, CalendarServer.Shift)},
		{MethodName: "Diff", Handler: unaryHandler(MethodDiff, CalendarServer.Diff)},
		{MethodName: "Health", Handler: unaryHandler(MethodHealth, CalendarServer.Health)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Step",
			Handler:       stepHandler,
			ServerStreams: true,
		},
	},
	Metadata: ProtoFile,
}
