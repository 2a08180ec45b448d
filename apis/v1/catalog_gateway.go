package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RegisterCatalogHandlerFromEndpoint dials endpoint and routes the REST API
// of the catalog to it. The connection is closed when ctx is done.
func RegisterCatalogHandlerFromEndpoint(ctx context.Context, mux *runtime.ServeMux, endpoint string, opts []grpc.DialOption) (err error) {
	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if cerr := conn.Close(); cerr != nil {
				logrus.Errorf("failed to close conn to %s: %v", endpoint, cerr)
			}
			return
		}
		go func() {
			<-ctx.Done()
			if cerr := conn.Close(); cerr != nil {
				logrus.Errorf("failed to close conn to %s: %v", endpoint, cerr)
			}
		}()
	}()

	return RegisterCatalogHandlerClient(ctx, mux, NewCatalogClient(conn))
}

// RegisterCatalogHandlerClient routes the REST API of the catalog to client.
func RegisterCatalogHandlerClient(ctx context.Context, mux *runtime.ServeMux, client CatalogClient) error {
	routes := []func() error{
		func() error {
			return route(mux, http.MethodPost, "/v1/entities/{kind}", Catalog_CreateEntity_FullMethodName, bindCreate, client.CreateEntity)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/entities/{kind}", Catalog_ListEntities_FullMethodName, bindList, client.ListEntities)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/entities/{kind}/{id}", Catalog_GetEntity_FullMethodName, bindGet, client.GetEntity)
		},
		func() error {
			return route(mux, http.MethodPut, "/v1/entities/{kind}/{id}", Catalog_UpdateEntity_FullMethodName, bindUpdate, client.UpdateEntity)
		},
		func() error {
			return route(mux, http.MethodDelete, "/v1/entities/{kind}/{id}", Catalog_DeleteEntity_FullMethodName, bindRef, client.DeleteEntity)
		},
		func() error {
			return route(mux, http.MethodPost, "/v1/entities/{kind}/{id}/publish", Catalog_PublishEntity_FullMethodName, bindLanguages, client.PublishEntity)
		},
		func() error {
			return route(mux, http.MethodPost, "/v1/entities/{kind}/{id}/withdraw", Catalog_WithdrawEntity_FullMethodName, bindLanguages, client.WithdrawEntity)
		},
		func() error {
			return route(mux, http.MethodPost, "/v1/entities/{kind}/{id}/restore", Catalog_RestoreEntity_FullMethodName, bindRef, client.RestoreEntity)
		},
		func() error {
			return route(mux, http.MethodDelete, "/v1/entities/{kind}/{id}/erase", Catalog_EraseEntity_FullMethodName, bindRef, client.EraseEntity)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/entities/{kind}/{id}/versions", Catalog_ListVersions_FullMethodName, bindRef, client.ListVersions)
		},
		func() error {
			return route(mux, http.MethodPost, "/v1/entities/{kind}/{id}/lock", Catalog_LockEntity_FullMethodName, bindRef, client.LockEntity)
		},
		func() error {
			return route(mux, http.MethodDelete, "/v1/entities/{kind}/{id}/lock", Catalog_UnlockEntity_FullMethodName, bindRef, client.UnlockEntity)
		},
		func() error {
			return route(mux, http.MethodPost, "/v1/connections", Catalog_Connect_FullMethodName, bindBody[ConnectRequest], client.Connect)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/connections", Catalog_ListConnections_FullMethodName, bindListConnections, client.ListConnections)
		},
		func() error {
			return route(mux, http.MethodDelete, "/v1/connections/{serviceId}/{channelId}", Catalog_Disconnect_FullMethodName, bindDisconnect, client.Disconnect)
		},
		func() error {
			return route(mux, http.MethodPut, "/v1/taxonomies/{taxonomy}", Catalog_ImportTaxonomy_FullMethodName, bindImport, client.ImportTaxonomy)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/taxonomies/{taxonomy}", Catalog_GetTaxonomyTree_FullMethodName, bindTree, client.GetTaxonomyTree)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/taxonomies/{taxonomy}/{id}/ancestors", Catalog_GetTaxonomyAncestors_FullMethodName, bindAncestors, client.GetTaxonomyAncestors)
		},
		func() error {
			return route(mux, http.MethodPost, "/v1/schedules/apply", Catalog_ApplySchedules_FullMethodName, bindBody[ApplySchedulesRequest], client.ApplySchedules)
		},
		func() error {
			return route(mux, http.MethodGet, "/v1/integrity", Catalog_CheckIntegrity_FullMethodName, bindBody[CheckIntegrityRequest], client.CheckIntegrity)
		},
	}

	for _, register := range routes {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

type binder[Req any] func(r *http.Request, params map[string]string, inbound runtime.Marshaler, req *Req) error

type caller[Req, Resp any] func(ctx context.Context, req *Req, opts ...grpc.CallOption) (*Resp, error)

func route[Req, Resp any](mux *runtime.ServeMux, method, pattern, rpc string, bind binder[Req], call caller[Req, Resp]) error {
	return mux.HandlePath(method, pattern, func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		inbound, outbound := runtime.MarshalerForRequest(mux, r)

		ctx, err := runtime.AnnotateContext(r.Context(), mux, r, rpc, runtime.WithHTTPPathPattern(pattern))
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, err)
			return
		}

		req := new(Req)
		if err := bind(r, params, inbound, req); err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, status.Error(codes.InvalidArgument, err.Error()))
			return
		}

		resp, err := call(ctx, req)
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}

		buf, err := outbound.Marshal(resp)
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, status.Error(codes.Internal, err.Error()))
			return
		}
		w.Header().Set("Content-Type", outbound.ContentType(resp))
		if _, err := w.Write(buf); err != nil {
			logrus.Errorf("failed to write response: %v", err)
		}
	})
}

func decodeBody(r *http.Request, inbound runtime.Marshaler, v any) error {
	if r.Body == nil {
		return nil
	}
	err := inbound.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func bindBody[Req any](r *http.Request, _ map[string]string, inbound runtime.Marshaler, req *Req) error {
	return decodeBody(r, inbound, req)
}

func bindCreate(r *http.Request, params map[string]string, inbound runtime.Marshaler, req *CreateEntityRequest) error {
	if err := decodeBody(r, inbound, req); err != nil {
		return err
	}
	req.Kind = params["kind"]
	return nil
}

func bindUpdate(r *http.Request, params map[string]string, inbound runtime.Marshaler, req *UpdateEntityRequest) error {
	if err := decodeBody(r, inbound, req); err != nil {
		return err
	}
	req.Kind = params["kind"]
	req.ID = params["id"]
	return nil
}

func bindLanguages(r *http.Request, params map[string]string, inbound runtime.Marshaler, req *LanguagesRequest) error {
	if err := decodeBody(r, inbound, req); err != nil {
		return err
	}
	req.Kind = params["kind"]
	req.ID = params["id"]
	return nil
}

func bindRef(_ *http.Request, params map[string]string, _ runtime.Marshaler, req *EntityRef) error {
	req.Kind = params["kind"]
	req.ID = params["id"]
	return nil
}

// bindGet takes the language from the query, or from Accept-Language.
func bindGet(r *http.Request, params map[string]string, _ runtime.Marshaler, req *GetEntityRequest) error {
	query := r.URL.Query()
	req.Kind = params["kind"]
	req.ID = params["id"]
	req.Selector = query.Get("selector")
	req.Language = query.Get("language")
	if req.Language == "" {
		req.Language = r.Header.Get("Accept-Language")
	}
	return nil
}

func bindList(r *http.Request, params map[string]string, _ runtime.Marshaler, req *ListEntitiesRequest) error {
	query := r.URL.Query()
	req.Kind = params["kind"]
	req.Status = query.Get("status")
	req.OrganizationID = query.Get("organizationId")
	req.Language = query.Get("language")

	var err error
	if req.Page, err = queryInt(query.Get("page")); err != nil {
		return err
	}
	if req.PageSize, err = queryInt(query.Get("pageSize")); err != nil {
		return err
	}
	return nil
}

func bindListConnections(r *http.Request, _ map[string]string, _ runtime.Marshaler, req *ListConnectionsRequest) error {
	query := r.URL.Query()
	req.ServiceID = query.Get("serviceId")
	req.ChannelID = query.Get("channelId")
	return nil
}

func bindDisconnect(_ *http.Request, params map[string]string, _ runtime.Marshaler, req *DisconnectRequest) error {
	req.ServiceID = params["serviceId"]
	req.ChannelID = params["channelId"]
	return nil
}

func bindImport(r *http.Request, params map[string]string, inbound runtime.Marshaler, req *ImportTaxonomyRequest) error {
	if err := decodeBody(r, inbound, req); err != nil {
		return err
	}
	req.Taxonomy = params["taxonomy"]
	return nil
}

func bindTree(r *http.Request, params map[string]string, _ runtime.Marshaler, req *GetTaxonomyTreeRequest) error {
	req.Taxonomy = params["taxonomy"]
	req.Language = r.URL.Query().Get("language")
	return nil
}

func bindAncestors(r *http.Request, params map[string]string, _ runtime.Marshaler, req *GetTaxonomyAncestorsRequest) error {
	req.Taxonomy = params["taxonomy"]
	req.ID = params["id"]
	req.Language = r.URL.Query().Get("language")
	return nil
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
