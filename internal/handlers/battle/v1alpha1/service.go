package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "nyanko.battle.v1alpha1.BattleService"

// Full method names
const (
	BattleServiceStartBattleFullMethodName  = "/" + ServiceName + "/StartBattle"
	BattleServiceAdvanceRoundFullMethodName = "/" + ServiceName + "/AdvanceRound"
	BattleServiceGetBattleFullMethodName    = "/" + ServiceName + "/GetBattle"
	BattleServiceGetResultFullMethodName    = "/" + ServiceName + "/GetResult"
	BattleServiceAutoBattleFullMethodName   = "/" + ServiceName + "/AutoBattle"
	BattleServiceListBattlesFullMethodName  = "/" + ServiceName + "/ListBattles"
	BattleServiceReplayBattleFullMethodName = "/" + ServiceName + "/ReplayBattle"
)

// BattleServiceServer is the server API for the battle service defined in
// api/proto/nyanko/battle/v1alpha1/battle.proto. Requests and responses are
// JSON documents carried as google.protobuf.Struct.
type BattleServiceServer interface {
	StartBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdvanceRound(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetResult(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AutoBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBattles(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReplayBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serverCall func(BattleServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call serverCall) grpc.MethodHandler {
	return func(
		srv any,
		ctx context.Context,
		dec func(any) error,
		interceptor grpc.UnaryServerInterceptor,
	) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BattleServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BattleServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BattleServiceDesc is the grpc.ServiceDesc for the battle service
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StartBattle",
			Handler:    unaryHandler(BattleServiceStartBattleFullMethodName, BattleServiceServer.StartBattle),
		},
		{
			MethodName: "AdvanceRound",
			Handler:    unaryHandler(BattleServiceAdvanceRoundFullMethodName, BattleServiceServer.AdvanceRound),
		},
		{
			MethodName: "GetBattle",
			Handler:    unaryHandler(BattleServiceGetBattleFullMethodName, BattleServiceServer.GetBattle),
		},
		{
			MethodName: "GetResult",
			Handler:    unaryHandler(BattleServiceGetResultFullMethodName, BattleServiceServer.GetResult),
		},
		{
			MethodName: "AutoBattle",
			Handler:    unaryHandler(BattleServiceAutoBattleFullMethodName, BattleServiceServer.AutoBattle),
		},
		{
			MethodName: "ListBattles",
			Handler:    unaryHandler(BattleServiceListBattlesFullMethodName, BattleServiceServer.ListBattles),
		},
		{
			MethodName: "ReplayBattle",
			Handler:    unaryHandler(BattleServiceReplayBattleFullMethodName, BattleServiceServer.ReplayBattle),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nyanko/battle/v1alpha1/battle.proto",
}

// RegisterBattleServiceServer registers the battle service on a gRPC server
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

// BattleServiceClient is the client API for the battle service
type BattleServiceClient interface {
	StartBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AdvanceRound(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AutoBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListBattles(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ReplayBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type battleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBattleServiceClient creates a client on top of an existing connection
func NewBattleServiceClient(cc grpc.ClientConnInterface) BattleServiceClient {
	return &battleServiceClient{cc: cc}
}

func (c *battleServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *battleServiceClient) StartBattle(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceStartBattleFullMethodName, in, opts...)
}

func (c *battleServiceClient) AdvanceRound(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceAdvanceRoundFullMethodName, in, opts...)
}

func (c *battleServiceClient) GetBattle(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceGetBattleFullMethodName, in, opts...)
}

func (c *battleServiceClient) GetResult(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceGetResultFullMethodName, in, opts...)
}

func (c *battleServiceClient) AutoBattle(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceAutoBattleFullMethodName, in, opts...)
}

func (c *battleServiceClient) ListBattles(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceListBattlesFullMethodName, in, opts...)
}

func (c *battleServiceClient) ReplayBattle(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, BattleServiceReplayBattleFullMethodName, in, opts...)
}
