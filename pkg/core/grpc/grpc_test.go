package grpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// echoService answers on the "test.Echo" service. The "mode" field of the
// request selects the behaviour.
type echoService struct{}

func (echoService) echo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	switch req.GetFields()["mode"].GetStringValue() {
	case "panic":
		panic("boom")
	case "invalid":
		return nil, mdwerror.New("bad date").WithCode(mdwerror.CodeInvalidDate)
	case "plain":
		return nil, errors.New("secret detail")
	}
	return structpb.NewStruct(map[string]interface{}{
		"request_id": GetRequestID(ctx),
	})
}

func (s echoService) count(req *structpb.Struct, stream grpc.ServerStream) error {
	n := int(req.GetFields()["n"].GetNumberValue())
	for i := 0; i < n; i++ {
		msg, _ := structpb.NewStruct(map[string]interface{}{
			"i":          float64(i),
			"request_id": GetRequestID(stream.Context()),
		})
		if err := stream.SendMsg(msg); err != nil {
			return err
		}
	}
	if req.GetFields()["fail"].GetBoolValue() {
		return mdwerror.New("too many").WithCode(mdwerror.CodeInvalidInput)
	}
	return nil
}

var echoDesc = grpc.ServiceDesc{
	ServiceName: "test.Echo",
	HandlerType: (*interface{})(nil),
	Methods: []grpc.MethodDesc{{
		MethodName: "Echo",
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/test.Echo/Echo"}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(echoService).echo(ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}},
	Streams: []grpc.StreamDesc{{
		StreamName:    "Count",
		ServerStreams: true,
		Handler: func(srv interface{}, stream grpc.ServerStream) error {
			in := new(structpb.Struct)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return srv.(echoService).count(in, stream)
		},
	}},
}

func startEcho(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	cfg := DefaultServerConfig()
	cfg.EnableReflection = false
	srv := NewServer(cfg, quietLogger())
	srv.RegisterService(&echoDesc, echoService{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	ccfg := DefaultClientConfig("passthrough:///bufnet")
	ccfg.Logger = quietLogger()
	conn, err := Dial(ccfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func callEcho(ctx context.Context, conn *grpc.ClientConn, mode string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, _ := structpb.NewStruct(map[string]interface{}{"mode": mode})
	resp := new(structpb.Struct)
	err := conn.Invoke(ctx, "/test.Echo/Echo", req, resp, opts...)
	return resp, err
}

func TestServerUnary(t *testing.T) {
	conn := startEcho(t)
	ctx := context.Background()

	var header metadata.MD
	resp, err := callEcho(ctx, conn, "ok", grpc.Header(&header))
	if err != nil {
		t.Fatalf("Echo() error = %v", err)
	}
	id := resp.GetFields()["request_id"].GetStringValue()
	if id == "" {
		t.Error("handler saw no request ID")
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] != id {
		t.Errorf("response header %s = %v, want [%s]", RequestIDHeader, got, id)
	}
}

func TestServerPropagatesRequestID(t *testing.T) {
	conn := startEcho(t)
	ctx := WithRequestID(context.Background(), "req-42")

	resp, err := callEcho(ctx, conn, "ok")
	if err != nil {
		t.Fatalf("Echo() error = %v", err)
	}
	if got := resp.GetFields()["request_id"].GetStringValue(); got != "req-42" {
		t.Errorf("request_id = %q, want %q", got, "req-42")
	}
}

func TestServerErrorMapping(t *testing.T) {
	conn := startEcho(t)

	tests := []struct {
		mode     string
		wantCode codes.Code
		wantMsg  string
	}{
		{"invalid", codes.InvalidArgument, "INVALID_DATE: bad date"},
		{"plain", codes.Internal, "internal server error"},
		{"panic", codes.Internal, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			_, err := callEcho(context.Background(), conn, tt.mode)
			st, ok := status.FromError(err)
			if !ok {
				t.Fatalf("Echo(%s) error %v is not a status", tt.mode, err)
			}
			if st.Code() != tt.wantCode {
				t.Errorf("Echo(%s) code = %v, want %v", tt.mode, st.Code(), tt.wantCode)
			}
			if st.Message() != tt.wantMsg {
				t.Errorf("Echo(%s) message = %q, want %q", tt.mode, st.Message(), tt.wantMsg)
			}
		})
	}
}

func TestServerStream(t *testing.T) {
	conn := startEcho(t)
	ctx := WithRequestID(context.Background(), "stream-1")

	open := func(fields map[string]interface{}) grpc.ClientStream {
		t.Helper()
		desc := &grpc.StreamDesc{StreamName: "Count", ServerStreams: true}
		stream, err := conn.NewStream(ctx, desc, "/test.Echo/Count")
		if err != nil {
			t.Fatalf("NewStream() error = %v", err)
		}
		req, _ := structpb.NewStruct(fields)
		if err := stream.SendMsg(req); err != nil {
			t.Fatalf("SendMsg() error = %v", err)
		}
		if err := stream.CloseSend(); err != nil {
			t.Fatalf("CloseSend() error = %v", err)
		}
		return stream
	}

	stream := open(map[string]interface{}{"n": 3})
	var got []float64
	for {
		msg := new(structpb.Struct)
		if err := stream.RecvMsg(msg); err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("RecvMsg() error = %v", err)
			}
			break
		}
		got = append(got, msg.GetFields()["i"].GetNumberValue())
		if id := msg.GetFields()["request_id"].GetStringValue(); id != "stream-1" {
			t.Errorf("stream request_id = %q, want %q", id, "stream-1")
		}
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("stream items = %v, want [0 1 2]", got)
	}

	stream = open(map[string]interface{}{"n": 1, "fail": true})
	var err error
	for err == nil {
		err = stream.RecvMsg(new(structpb.Struct))
	}
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("failing stream code = %v, want %v", status.Code(err), codes.InvalidArgument)
	}
}

func TestClientTimeoutInterceptor(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		deadline, hasDeadline = ctx.Deadline()
		return nil
	}

	ic := ClientTimeoutInterceptor(time.Minute)
	if err := ic(context.Background(), "/m", nil, nil, nil, invoker); err != nil {
		t.Fatalf("interceptor error = %v", err)
	}
	if !hasDeadline || time.Until(deadline) > time.Minute {
		t.Errorf("default deadline not applied: %v %v", deadline, hasDeadline)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	want, _ := ctx.Deadline()
	if err := ic(ctx, "/m", nil, nil, nil, invoker); err != nil {
		t.Fatalf("interceptor error = %v", err)
	}
	if !deadline.Equal(want) {
		t.Errorf("caller deadline replaced: got %v, want %v", deadline, want)
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{"nil", nil, codes.OK},
		{"status", status.Error(codes.NotFound, "x"), codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"invalid date", mdwerror.New("x").WithCode(mdwerror.CodeInvalidDate), codes.InvalidArgument},
		{"argument type", mdwerror.New("x").WithCode(mdwerror.CodeInvalidArgumentType), codes.InvalidArgument},
		{"unavailable", mdwerror.New("x").WithCode(mdwerror.CodeServiceUnavailable), codes.Unavailable},
		{"config", mdwerror.New("x").WithCode(mdwerror.CodeConfigError), codes.Internal},
		{"plain", errors.New("x"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(ToStatus(tt.err)); got != tt.wantCode {
				t.Errorf("ToStatus(%v) code = %v, want %v", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestServerAddress(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	srv := NewServer(cfg, nil)
	if got := srv.Address(); got != "127.0.0.1:9582" {
		t.Errorf("Address() = %q, want %q", got, "127.0.0.1:9582")
	}
	if !strings.HasPrefix(srv.Address(), cfg.Host) {
		t.Errorf("Address() = %q does not start with host", srv.Address())
	}
}

func TestLogRequest(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCat   string
		wantAlert bool
	}{
		{"success", nil, "info", "", false},
		{"caller error", mdwerror.New("bad date").WithCode(mdwerror.CodeInvalidDate), "warn", "calendar", false},
		{"config error", mdwerror.New("bad config").WithCode(mdwerror.CodeInvalidConfig), "error", "configuration", true},
		{"plain error", errors.New("disk on fire"), "error", "generic", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewWithConfig(logging.LoggerConfig{
				ServiceName: "test",
				Level:       "debug",
				Format:      "json",
				Output:      &buf,
			})

			logRequest(logger, "gRPC request", "req-1", "/test.Echo/Echo", time.Now(), tt.err)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["request_id"] != "req-1" || entry["method"] != "/test.Echo/Echo" {
				t.Errorf("entry = %v, want request_id and method", entry)
			}
			if tt.err == nil {
				if _, ok := entry["error_code"]; ok {
					t.Errorf("success logged an error code: %v", entry)
				}
				return
			}
			if entry["category"] != tt.wantCat {
				t.Errorf("category = %v, want %s", entry["category"], tt.wantCat)
			}
			if _, alert := entry["alert"]; alert != tt.wantAlert {
				t.Errorf("alert present = %v, want %v", alert, tt.wantAlert)
			}
			_, hasOrigin := entry["origin"]
			var mdwErr *mdwerror.Error
			if hasOrigin != errors.As(tt.err, &mdwErr) {
				t.Errorf("origin present = %v for %T", hasOrigin, tt.err)
			}
		})
	}
}

func quietLogger() *logging.Logger {
	return logging.NewWithConfig(logging.LoggerConfig{
		ServiceName: "test",
		Level:       "error",
		Output:      io.Discard,
	})
}
