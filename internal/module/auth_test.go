package module

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryServerActorInterceptor(t *testing.T) {
	interceptor := UnaryServerActorInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/ptv.v1.Catalog/GetEntity"}
	handler := func(ctx context.Context, req any) (any, error) {
		return Actor(ctx), nil
	}

	tests := []struct {
		name string
		md   metadata.MD
		want string
	}{
		{name: "no metadata", want: SystemActor},
		{name: "no header", md: metadata.Pairs("other", "x"), want: SystemActor},
		{name: "blank header", md: metadata.Pairs(ActorHeader, "  "), want: SystemActor},
		{name: "header", md: metadata.Pairs(ActorHeader, "maija"), want: "maija"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}
			got, err := interceptor(ctx, nil, info, handler)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(ActorHeader, strings.Repeat("a", maxActorLength+1)))
	_, err := interceptor(ctx, nil, info, handler)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
