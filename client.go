package ptv

import (
	"io"

	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Client interface {
	io.Closer
	v1.CatalogClient
}

type client struct {
	conn *grpc.ClientConn
	v1.CatalogClient
}

// NewClient connects to the catalog at addr. Every call is made on behalf of
// actor, or as the system user when actor is empty.
func NewClient(addr, actor string) (Client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(module.UnaryClientActorInterceptor(actor)),
	)
	if err != nil {
		return nil, err
	}
	return &client{
		conn:          conn,
		CatalogClient: v1.NewCatalogClient(conn),
	}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}
