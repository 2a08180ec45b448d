package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Catalog_CreateEntity_FullMethodName         = "/ptv.v1.Catalog/CreateEntity"
	Catalog_UpdateEntity_FullMethodName         = "/ptv.v1.Catalog/UpdateEntity"
	Catalog_PublishEntity_FullMethodName        = "/ptv.v1.Catalog/PublishEntity"
	Catalog_WithdrawEntity_FullMethodName       = "/ptv.v1.Catalog/WithdrawEntity"
	Catalog_DeleteEntity_FullMethodName         = "/ptv.v1.Catalog/DeleteEntity"
	Catalog_RestoreEntity_FullMethodName        = "/ptv.v1.Catalog/RestoreEntity"
	Catalog_EraseEntity_FullMethodName          = "/ptv.v1.Catalog/EraseEntity"
	Catalog_GetEntity_FullMethodName            = "/ptv.v1.Catalog/GetEntity"
	Catalog_ListEntities_FullMethodName         = "/ptv.v1.Catalog/ListEntities"
	Catalog_ListVersions_FullMethodName         = "/ptv.v1.Catalog/ListVersions"
	Catalog_LockEntity_FullMethodName           = "/ptv.v1.Catalog/LockEntity"
	Catalog_UnlockEntity_FullMethodName         = "/ptv.v1.Catalog/UnlockEntity"
	Catalog_Connect_FullMethodName              = "/ptv.v1.Catalog/Connect"
	Catalog_Disconnect_FullMethodName           = "/ptv.v1.Catalog/Disconnect"
	Catalog_ListConnections_FullMethodName      = "/ptv.v1.Catalog/ListConnections"
	Catalog_ImportTaxonomy_FullMethodName       = "/ptv.v1.Catalog/ImportTaxonomy"
	Catalog_GetTaxonomyTree_FullMethodName      = "/ptv.v1.Catalog/GetTaxonomyTree"
	Catalog_GetTaxonomyAncestors_FullMethodName = "/ptv.v1.Catalog/GetTaxonomyAncestors"
	Catalog_ApplySchedules_FullMethodName       = "/ptv.v1.Catalog/ApplySchedules"
	Catalog_CheckIntegrity_FullMethodName       = "/ptv.v1.Catalog/CheckIntegrity"
)

// CatalogServer is the server API of the ptv.v1.Catalog service.
type CatalogServer interface {
	CreateEntity(context.Context, *CreateEntityRequest) (*EntityResponse, error)
	UpdateEntity(context.Context, *UpdateEntityRequest) (*EntityResponse, error)
	PublishEntity(context.Context, *LanguagesRequest) (*EntityResponse, error)
	WithdrawEntity(context.Context, *LanguagesRequest) (*EntityResponse, error)
	DeleteEntity(context.Context, *EntityRef) (*EntityResponse, error)
	RestoreEntity(context.Context, *EntityRef) (*EntityResponse, error)
	EraseEntity(context.Context, *EntityRef) (*Empty, error)
	GetEntity(context.Context, *GetEntityRequest) (*EntityResponse, error)
	ListEntities(context.Context, *ListEntitiesRequest) (*ListEntitiesResponse, error)
	ListVersions(context.Context, *EntityRef) (*ListVersionsResponse, error)
	LockEntity(context.Context, *EntityRef) (*LockResponse, error)
	UnlockEntity(context.Context, *EntityRef) (*Empty, error)
	Connect(context.Context, *ConnectRequest) (*ConnectionResponse, error)
	Disconnect(context.Context, *DisconnectRequest) (*Empty, error)
	ListConnections(context.Context, *ListConnectionsRequest) (*ListConnectionsResponse, error)
	ImportTaxonomy(context.Context, *ImportTaxonomyRequest) (*ImportTaxonomyResponse, error)
	GetTaxonomyTree(context.Context, *GetTaxonomyTreeRequest) (*GetTaxonomyTreeResponse, error)
	GetTaxonomyAncestors(context.Context, *GetTaxonomyAncestorsRequest) (*GetTaxonomyAncestorsResponse, error)
	ApplySchedules(context.Context, *ApplySchedulesRequest) (*ApplySchedulesResponse, error)
	CheckIntegrity(context.Context, *CheckIntegrityRequest) (*CheckIntegrityResponse, error)
	mustEmbedUnimplementedCatalogServer()
}

// UnimplementedCatalogServer must be embedded by CatalogServer implementations.
type UnimplementedCatalogServer struct{}

func (UnimplementedCatalogServer) CreateEntity(context.Context, *CreateEntityRequest) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateEntity not implemented")
}
func (UnimplementedCatalogServer) UpdateEntity(context.Context, *UpdateEntityRequest) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateEntity not implemented")
}
func (UnimplementedCatalogServer) PublishEntity(context.Context, *LanguagesRequest) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PublishEntity not implemented")
}
func (UnimplementedCatalogServer) WithdrawEntity(context.Context, *LanguagesRequest) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method WithdrawEntity not implemented")
}
func (UnimplementedCatalogServer) DeleteEntity(context.Context, *EntityRef) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteEntity not implemented")
}
func (UnimplementedCatalogServer) RestoreEntity(context.Context, *EntityRef) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RestoreEntity not implemented")
}
func (UnimplementedCatalogServer) EraseEntity(context.Context, *EntityRef) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EraseEntity not implemented")
}
func (UnimplementedCatalogServer) GetEntity(context.Context, *GetEntityRequest) (*EntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetEntity not implemented")
}
func (UnimplementedCatalogServer) ListEntities(context.Context, *ListEntitiesRequest) (*ListEntitiesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListEntities not implemented")
}
func (UnimplementedCatalogServer) ListVersions(context.Context, *EntityRef) (*ListVersionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListVersions not implemented")
}
func (UnimplementedCatalogServer) LockEntity(context.Context, *EntityRef) (*LockResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LockEntity not implemented")
}
func (UnimplementedCatalogServer) UnlockEntity(context.Context, *EntityRef) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UnlockEntity not implemented")
}
func (UnimplementedCatalogServer) Connect(context.Context, *ConnectRequest) (*ConnectionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Connect not implemented")
}
func (UnimplementedCatalogServer) Disconnect(context.Context, *DisconnectRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Disconnect not implemented")
}
func (UnimplementedCatalogServer) ListConnections(context.Context, *ListConnectionsRequest) (*ListConnectionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListConnections not implemented")
}
func (UnimplementedCatalogServer) ImportTaxonomy(context.Context, *ImportTaxonomyRequest) (*ImportTaxonomyResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ImportTaxonomy not implemented")
}
func (UnimplementedCatalogServer) GetTaxonomyTree(context.Context, *GetTaxonomyTreeRequest) (*GetTaxonomyTreeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTaxonomyTree not implemented")
}
func (UnimplementedCatalogServer) GetTaxonomyAncestors(context.Context, *GetTaxonomyAncestorsRequest) (*GetTaxonomyAncestorsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTaxonomyAncestors not implemented")
}
func (UnimplementedCatalogServer) ApplySchedules(context.Context, *ApplySchedulesRequest) (*ApplySchedulesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplySchedules not implemented")
}
func (UnimplementedCatalogServer) CheckIntegrity(context.Context, *CheckIntegrityRequest) (*CheckIntegrityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckIntegrity not implemented")
}
func (UnimplementedCatalogServer) mustEmbedUnimplementedCatalogServer() {}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&Catalog_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to the handler of a grpc.MethodDesc.
func unaryHandler[Req, Resp any](fullMethod string, call func(CatalogServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Catalog_ServiceDesc is the grpc.ServiceDesc for the ptv.v1.Catalog service.
var Catalog_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ptv.v1.Catalog",
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateEntity", Handler: unaryHandler(Catalog_CreateEntity_FullMethodName, CatalogServer.CreateEntity)},
		{MethodName: "UpdateEntity", Handler: unaryHandler(Catalog_UpdateEntity_FullMethodName, CatalogServer.UpdateEntity)},
		{MethodName: "PublishEntity", Handler: unaryHandler(Catalog_PublishEntity_FullMethodName, CatalogServer.PublishEntity)},
		{MethodName: "WithdrawEntity", Handler: unaryHandler(Catalog_WithdrawEntity_FullMethodName, CatalogServer.WithdrawEntity)},
		{MethodName: "DeleteEntity", Handler: unaryHandler(Catalog_DeleteEntity_FullMethodName, CatalogServer.DeleteEntity)},
		{MethodName: "RestoreEntity", Handler: unaryHandler(Catalog_RestoreEntity_FullMethodName, CatalogServer.RestoreEntity)},
		{MethodName: "EraseEntity", Handler: unaryHandler(Catalog_EraseEntity_FullMethodName, CatalogServer.EraseEntity)},
		{MethodName: "GetEntity", Handler: unaryHandler(Catalog_GetEntity_FullMethodName, CatalogServer.GetEntity)},
		{MethodName: "ListEntities", Handler: unaryHandler(Catalog_ListEntities_FullMethodName, CatalogServer.ListEntities)},
		{MethodName: "ListVersions", Handler: unaryHandler(Catalog_ListVersions_FullMethodName, CatalogServer.ListVersions)},
		{MethodName: "LockEntity", Handler: unaryHandler(Catalog_LockEntity_FullMethodName, CatalogServer.LockEntity)},
		{MethodName: "UnlockEntity", Handler: unaryHandler(Catalog_UnlockEntity_FullMethodName, CatalogServer.UnlockEntity)},
		{MethodName: "Connect", Handler: unaryHandler(Catalog_Connect_FullMethodName, CatalogServer.Connect)},
		{MethodName: "Disconnect", Handler: unaryHandler(Catalog_Disconnect_FullMethodName, CatalogServer.Disconnect)},
		{MethodName: "ListConnections", Handler: unaryHandler(Catalog_ListConnections_FullMethodName, CatalogServer.ListConnections)},
		{MethodName: "ImportTaxonomy", Handler: unaryHandler(Catalog_ImportTaxonomy_FullMethodName, CatalogServer.ImportTaxonomy)},
		{MethodName: "GetTaxonomyTree", Handler: unaryHandler(Catalog_GetTaxonomyTree_FullMethodName, CatalogServer.GetTaxonomyTree)},
		{MethodName: "GetTaxonomyAncestors", Handler: unaryHandler(Catalog_GetTaxonomyAncestors_FullMethodName, CatalogServer.GetTaxonomyAncestors)},
		{MethodName: "ApplySchedules", Handler: unaryHandler(Catalog_ApplySchedules_FullMethodName, CatalogServer.ApplySchedules)},
		{MethodName: "CheckIntegrity", Handler: unaryHandler(Catalog_CheckIntegrity_FullMethodName, CatalogServer.CheckIntegrity)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ptv/v1/catalog.proto",
}

// CatalogClient is the client API of the ptv.v1.Catalog service.
type CatalogClient interface {
	CreateEntity(ctx context.Context, in *CreateEntityRequest, opts ...grpc.CallOption) (*EntityResponse, error)
	UpdateEntity(ctx context.Context, in *UpdateEntityRequest, opts ...grpc.CallOption) (*EntityResponse, error)
	PublishEntity(ctx context.Context, in *LanguagesRequest, opts ...grpc.CallOption) (*EntityResponse, error)
	WithdrawEntity(ctx context.Context, in *LanguagesRequest, opts ...grpc.CallOption) (*EntityResponse, error)
	DeleteEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*EntityResponse, error)
	RestoreEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*EntityResponse, error)
	EraseEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*Empty, error)
	GetEntity(ctx context.Context, in *GetEntityRequest, opts ...grpc.CallOption) (*EntityResponse, error)
	ListEntities(ctx context.Context, in *ListEntitiesRequest, opts ...grpc.CallOption) (*ListEntitiesResponse, error)
	ListVersions(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*ListVersionsResponse, error)
	LockEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*LockResponse, error)
	UnlockEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*Empty, error)
	Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (*ConnectionResponse, error)
	Disconnect(ctx context.Context, in *DisconnectRequest, opts ...grpc.CallOption) (*Empty, error)
	ListConnections(ctx context.Context, in *ListConnectionsRequest, opts ...grpc.CallOption) (*ListConnectionsResponse, error)
	ImportTaxonomy(ctx context.Context, in *ImportTaxonomyRequest, opts ...grpc.CallOption) (*ImportTaxonomyResponse, error)
	GetTaxonomyTree(ctx context.Context, in *GetTaxonomyTreeRequest, opts ...grpc.CallOption) (*GetTaxonomyTreeResponse, error)
	GetTaxonomyAncestors(ctx context.Context, in *GetTaxonomyAncestorsRequest, opts ...grpc.CallOption) (*GetTaxonomyAncestorsResponse, error)
	ApplySchedules(ctx context.Context, in *ApplySchedulesRequest, opts ...grpc.CallOption) (*ApplySchedulesResponse, error)
	CheckIntegrity(ctx context.Context, in *CheckIntegrityRequest, opts ...grpc.CallOption) (*CheckIntegrityResponse, error)
}

type catalogClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogClient returns a client sending JSON encoded messages over cc.
func NewCatalogClient(cc grpc.ClientConnInterface) CatalogClient {
	return &catalogClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogClient) CreateEntity(ctx context.Context, in *CreateEntityRequest, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_CreateEntity_FullMethodName, in, opts)
}

func (c *catalogClient) UpdateEntity(ctx context.Context, in *UpdateEntityRequest, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_UpdateEntity_FullMethodName, in, opts)
}

func (c *catalogClient) PublishEntity(ctx context.Context, in *LanguagesRequest, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_PublishEntity_FullMethodName, in, opts)
}

func (c *catalogClient) WithdrawEntity(ctx context.Context, in *LanguagesRequest, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_WithdrawEntity_FullMethodName, in, opts)
}

func (c *catalogClient) DeleteEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_DeleteEntity_FullMethodName, in, opts)
}

func (c *catalogClient) RestoreEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_RestoreEntity_FullMethodName, in, opts)
}

func (c *catalogClient) EraseEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Catalog_EraseEntity_FullMethodName, in, opts)
}

func (c *catalogClient) GetEntity(ctx context.Context, in *GetEntityRequest, opts ...grpc.CallOption) (*EntityResponse, error) {
	return invoke[EntityResponse](ctx, c.cc, Catalog_GetEntity_FullMethodName, in, opts)
}

func (c *catalogClient) ListEntities(ctx context.Context, in *ListEntitiesRequest, opts ...grpc.CallOption) (*ListEntitiesResponse, error) {
	return invoke[ListEntitiesResponse](ctx, c.cc, Catalog_ListEntities_FullMethodName, in, opts)
}

func (c *catalogClient) ListVersions(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*ListVersionsResponse, error) {
	return invoke[ListVersionsResponse](ctx, c.cc, Catalog_ListVersions_FullMethodName, in, opts)
}

func (c *catalogClient) LockEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*LockResponse, error) {
	return invoke[LockResponse](ctx, c.cc, Catalog_LockEntity_FullMethodName, in, opts)
}

func (c *catalogClient) UnlockEntity(ctx context.Context, in *EntityRef, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Catalog_UnlockEntity_FullMethodName, in, opts)
}

func (c *catalogClient) Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (*ConnectionResponse, error) {
	return invoke[ConnectionResponse](ctx, c.cc, Catalog_Connect_FullMethodName, in, opts)
}

func (c *catalogClient) Disconnect(ctx context.Context, in *DisconnectRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Catalog_Disconnect_FullMethodName, in, opts)
}

func (c *catalogClient) ListConnections(ctx context.Context, in *ListConnectionsRequest, opts ...grpc.CallOption) (*ListConnectionsResponse, error) {
	return invoke[ListConnectionsResponse](ctx, c.cc, Catalog_ListConnections_FullMethodName, in, opts)
}

func (c *catalogClient) ImportTaxonomy(ctx context.Context, in *ImportTaxonomyRequest, opts ...grpc.CallOption) (*ImportTaxonomyResponse, error) {
	return invoke[ImportTaxonomyResponse](ctx, c.cc, Catalog_ImportTaxonomy_FullMethodName, in, opts)
}

func (c *catalogClient) GetTaxonomyTree(ctx context.Context, in *GetTaxonomyTreeRequest, opts ...grpc.CallOption) (*GetTaxonomyTreeResponse, error) {
	return invoke[GetTaxonomyTreeResponse](ctx, c.cc, Catalog_GetTaxonomyTree_FullMethodName, in, opts)
}

func (c *catalogClient) GetTaxonomyAncestors(ctx context.Context, in *GetTaxonomyAncestorsRequest, opts ...grpc.CallOption) (*GetTaxonomyAncestorsResponse, error) {
	return invoke[GetTaxonomyAncestorsResponse](ctx, c.cc, Catalog_GetTaxonomyAncestors_FullMethodName, in, opts)
}

func (c *catalogClient) ApplySchedules(ctx context.Context, in *ApplySchedulesRequest, opts ...grpc.CallOption) (*ApplySchedulesResponse, error) {
	return invoke[ApplySchedulesResponse](ctx, c.cc, Catalog_ApplySchedules_FullMethodName, in, opts)
}

func (c *catalogClient) CheckIntegrity(ctx context.Context, in *CheckIntegrityRequest, opts ...grpc.CallOption) (*CheckIntegrityResponse, error) {
	return invoke[CheckIntegrityResponse](ctx, c.cc, Catalog_CheckIntegrity_FullMethodName, in, opts)
}
