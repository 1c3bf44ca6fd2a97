package server

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoFile is the path under which the calendar service descriptor is
// registered with the global protobuf registry
const ProtoFile = "scaliger/v1/calendar.proto"

// CalendarFile describes the calendar service for server reflection
var CalendarFile protoreflect.FileDescriptor

func init() {
	fd, err := protodesc.NewFile(calendarFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(err)
	}
	CalendarFile = fd
}

// calendarFileProto mirrors CalendarServiceDesc: every method takes and
// returns a google.protobuf.Struct, and Step streams its results.
func calendarFileProto() *descriptorpb.FileDescriptorProto {
	structType := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())
	method := func(name string, streaming bool) *descriptorpb.MethodDescriptorProto {
		m := &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		}
		if streaming {
			m.ServerStreaming = proto.Bool(true)
		}
		return m
	}

	var methods []*descriptorpb.MethodDescriptorProto
	for _, m := range CalendarServiceDesc.Methods {
		methods = append(methods, method(m.MethodName, false))
	}
	for _, s := range CalendarServiceDesc.Streams {
		methods = append(methods, method(s.StreamName, s.ServerStreams))
	}

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String("scaliger.v1"),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("Calendar"),
			Method: methods,
		}},
	}
}
