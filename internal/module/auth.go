package module

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// ActorHeader carries the user name recorded in the audit columns.
	ActorHeader = "x-ptv-actor"
	// SystemActor is recorded when a change is made without a caller.
	SystemActor = "system"

	maxActorLength = 100
)

var (
	errNoMetadata = errors.New("metadata not found")
	errNoActor    = errors.New("actor header not found")
)

type actorKey struct{}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// Actor returns the acting user of ctx, or SystemActor.
func Actor(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}

// UnaryServerActorInterceptor copies the actor header into the request
// context. Calls without the header act as SystemActor.
func UnaryServerActorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		actor, err := actorFromHeader(ctx, ActorHeader)
		if err != nil {
			return handler(ctx, req)
		}

		if len(actor) > maxActorLength {
			return nil, status.Errorf(codes.InvalidArgument, "actor longer than %d characters", maxActorLength)
		}

		return handler(WithActor(ctx, actor), req)
	}
}

// UnaryClientActorInterceptor sends actor with every call.
func UnaryClientActorInterceptor(actor string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if actor != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, ActorHeader, actor)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func actorFromHeader(ctx context.Context, header string) (string, error) {
	headers, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errNoMetadata
	}

	val := headers.Get(header)
	if len(val) == 0 {
		return "", errNoActor
	}

	actor := strings.TrimSpace(val[0])
	if actor == "" {
		return "", errNoActor
	}

	return actor, nil
}
