// Package v1 serves the tracker over gRPC.
//
// Requests and responses are google.protobuf.Struct messages, so the service
// descriptor is declared here instead of being generated from a .proto file.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "tracker.v1.TrackerService"

// Method names
const (
	MethodListCharacters     = "ListCharacters"
	MethodGetCharacter       = "GetCharacter"
	MethodAddCharacter       = "AddCharacter"
	MethodRemoveCharacter    = "RemoveCharacter"
	MethodUpdateSlot         = "UpdateSlot"
	MethodCharactersUsingSet = "CharactersUsingSet"
	MethodFilterOptions      = "FilterOptions"
	MethodExport             = "Export"
	MethodImport             = "Import"
	MethodSuggest            = "Suggest"
)

// TrackerServiceServer is the server API for the tracker service
type TrackerServiceServer interface {
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSlot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CharactersUsingSet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FilterOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Export(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Import(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Suggest(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(TrackerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TrackerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TrackerServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the gRPC path of a tracker method
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// TrackerServiceDesc describes the tracker service for grpc.Server registration
var TrackerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodListCharacters, TrackerServiceServer.ListCharacters),
		methodDesc(MethodGetCharacter, TrackerServiceServer.GetCharacter),
		methodDesc(MethodAddCharacter, TrackerServiceServer.AddCharacter),
		methodDesc(MethodRemoveCharacter, TrackerServiceServer.RemoveCharacter),
		methodDesc(MethodUpdateSlot, TrackerServiceServer.UpdateSlot),
		methodDesc(MethodCharactersUsingSet, TrackerServiceServer.CharactersUsingSet),
		methodDesc(MethodFilterOptions, TrackerServiceServer.FilterOptions),
		methodDesc(MethodExport, TrackerServiceServer.Export),
		methodDesc(MethodImport, TrackerServiceServer.Import),
		methodDesc(MethodSuggest, TrackerServiceServer.Suggest),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tracker/v1/tracker.proto",
}

// RegisterTrackerServiceServer registers srv with s
func RegisterTrackerServiceServer(s grpc.ServiceRegistrar, srv TrackerServiceServer) {
	s.RegisterService(&TrackerServiceDesc, srv)
}

// Client calls the tracker service over a client connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a tracker client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes one tracker method. A nil request sends an empty struct.
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
