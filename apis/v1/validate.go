package v1

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate implementations are called by the gRPC validator interceptor before
// a request reaches the service.

func (r *CreateEntityRequest) Validate() error { return validate.Struct(r) }

func (r *UpdateEntityRequest) Validate() error { return validate.Struct(r) }

func (r *LanguagesRequest) Validate() error { return validate.Struct(r) }

func (r *EntityRef) Validate() error { return validate.Struct(r) }

func (r *GetEntityRequest) Validate() error { return validate.Struct(r) }

func (r *ListEntitiesRequest) Validate() error { return validate.Struct(r) }

func (r *ConnectRequest) Validate() error { return validate.Struct(r) }

func (r *DisconnectRequest) Validate() error { return validate.Struct(r) }

func (r *ListConnectionsRequest) Validate() error { return validate.Struct(r) }

func (r *ImportTaxonomyRequest) Validate() error { return validate.Struct(r) }

func (r *GetTaxonomyTreeRequest) Validate() error { return validate.Struct(r) }

func (r *GetTaxonomyAncestorsRequest) Validate() error { return validate.Struct(r) }
