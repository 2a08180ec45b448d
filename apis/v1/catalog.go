// Package v1 declares the messages, the gRPC service and the REST gateway of
// the catalog API. Messages travel as JSON on both transports.
package v1

import "time"

// LocalizedValue is a name or a description in one language. Type defaults to
// "name" for names and "description" for descriptions.
type LocalizedValue struct {
	Language string `json:"language" validate:"required"`
	Type     string `json:"type,omitempty"`
	Value    string `json:"value" validate:"required,max=4000"`
}

type Keyword struct {
	Language string `json:"language" validate:"required"`
	Value    string `json:"value" validate:"required,max=150"`
}

type WebPage struct {
	Language string `json:"language" validate:"required"`
	URL      string `json:"url" validate:"required,url,max=500"`
}

type Street struct {
	Language string `json:"language" validate:"required"`
	Street   string `json:"street" validate:"required,max=100"`
	Number   string `json:"number,omitempty" validate:"max=30"`
}

type Address struct {
	Character    string   `json:"character" validate:"required,oneof=visiting postal delivery"`
	PostalCode   string   `json:"postalCode,omitempty" validate:"omitempty,numeric,len=5"`
	Municipality string   `json:"municipality,omitempty" validate:"omitempty,numeric,max=10"`
	Country      string   `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Streets      []Street `json:"streets,omitempty" validate:"dive"`
}

// Content is the editable data of one version. Areas belong to
// organizations; funding and classifications to services; keywords,
// addresses and web pages to service channels.
type Content struct {
	Names          []LocalizedValue `json:"names" validate:"required,min=1,dive"`
	Descriptions   []LocalizedValue `json:"descriptions,omitempty" validate:"dive"`
	Type           string           `json:"type,omitempty" validate:"max=50"`
	OrganizationID string           `json:"organizationId,omitempty" validate:"omitempty,uuid"`
	ValidFrom      *time.Time       `json:"validFrom,omitempty"`
	ValidTo        *time.Time       `json:"validTo,omitempty"`

	AreaCodes []string `json:"areaCodes,omitempty" validate:"dive,required,max=20"`

	FundingType     string              `json:"fundingType,omitempty"`
	Classifications map[string][]string `json:"classifications,omitempty" validate:"dive,dive,uuid"`

	Keywords  []Keyword `json:"keywords,omitempty" validate:"dive"`
	Addresses []Address `json:"addresses,omitempty" validate:"dive"`
	WebPages  []WebPage `json:"webPages,omitempty" validate:"dive"`
}

// Version describes one revision of an entity.
type Version struct {
	ID                   string            `json:"id"`
	RootID               string            `json:"rootId"`
	VersioningID         string            `json:"versioningId"`
	PreviousVersioningID string            `json:"previousVersioningId,omitempty"`
	Status               string            `json:"status"`
	Version              string            `json:"version"`
	Languages            map[string]string `json:"languages"`
	ValidFrom            *time.Time        `json:"validFrom,omitempty"`
	ValidTo              *time.Time        `json:"validTo,omitempty"`
	LastOperation        string            `json:"lastOperation,omitempty"`
	Created              time.Time         `json:"created"`
	CreatedBy            string            `json:"createdBy,omitempty"`
	Modified             time.Time         `json:"modified"`
	ModifiedBy           string            `json:"modifiedBy,omitempty"`
}

// Entity is a version of an aggregate. Name is resolved in Language, falling
// back through the catalog languages.
type Entity struct {
	Kind     string   `json:"kind"`
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Language string   `json:"language,omitempty"`
	Version  *Version `json:"version"`
	Content  *Content `json:"content,omitempty"`
}

type CreateEntityRequest struct {
	Kind    string   `json:"kind" validate:"required,oneof=organization service service_channel general_description"`
	ID      string   `json:"id,omitempty" validate:"omitempty,uuid"`
	Content *Content `json:"content" validate:"required"`
}

type UpdateEntityRequest struct {
	Kind string `json:"kind" validate:"required,oneof=organization service service_channel general_description"`
	ID   string `json:"id" validate:"required,uuid"`
	// ExpectedVersionID is the latest version the caller has seen. The update
	// fails when another version has been stored since.
	ExpectedVersionID string   `json:"expectedVersionId,omitempty" validate:"omitempty,uuid"`
	Content           *Content `json:"content" validate:"required"`
}

// LanguagesRequest publishes or withdraws languages of an entity. No
// languages means all of them.
type LanguagesRequest struct {
	Kind      string   `json:"kind" validate:"required,oneof=organization service service_channel general_description"`
	ID        string   `json:"id" validate:"required,uuid"`
	Languages []string `json:"languages,omitempty" validate:"dive,required"`
}

// EntityRef addresses an aggregate by its root id.
type EntityRef struct {
	Kind string `json:"kind" validate:"required,oneof=organization service service_channel general_description"`
	ID   string `json:"id" validate:"required,uuid"`
}

// GetEntityRequest selects a version by "latest", "published" or a version id.
type GetEntityRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=organization service service_channel general_description"`
	ID       string `json:"id" validate:"required,uuid"`
	Selector string `json:"selector,omitempty"`
	Language string `json:"language,omitempty"`
}

type EntityResponse struct {
	Entity *Entity `json:"entity"`
}

type ListEntitiesRequest struct {
	Kind           string `json:"kind" validate:"required,oneof=organization service service_channel general_description"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=draft modified published archived deleted"`
	OrganizationID string `json:"organizationId,omitempty" validate:"omitempty,uuid"`
	Language       string `json:"language,omitempty"`
	Page           int    `json:"page,omitempty" validate:"gte=0"`
	PageSize       int    `json:"pageSize,omitempty" validate:"gte=0,lte=500"`
}

type ListEntitiesResponse struct {
	Entities []*Entity `json:"entities"`
	Total    int64     `json:"total"`
}

type ListVersionsResponse struct {
	Versions []*Version `json:"versions"`
}

type Empty struct{}

type Connection struct {
	ServiceID   string    `json:"serviceId"`
	ChannelID   string    `json:"channelId"`
	OrderNumber int       `json:"orderNumber"`
	Created     time.Time `json:"created"`
	CreatedBy   string    `json:"createdBy,omitempty"`
}

type ConnectRequest struct {
	ServiceID   string `json:"serviceId" validate:"required,uuid"`
	ChannelID   string `json:"channelId" validate:"required,uuid"`
	OrderNumber int    `json:"orderNumber,omitempty" validate:"gte=0"`
}

type DisconnectRequest struct {
	ServiceID string `json:"serviceId" validate:"required,uuid"`
	ChannelID string `json:"channelId" validate:"required,uuid"`
}

type ConnectionResponse struct {
	Connection *Connection `json:"connection"`
}

type ListConnectionsRequest struct {
	ServiceID string `json:"serviceId,omitempty" validate:"omitempty,uuid"`
	ChannelID string `json:"channelId,omitempty" validate:"omitempty,uuid"`
}

type ListConnectionsResponse struct {
	Connections []*Connection `json:"connections"`
}

type Lock struct {
	EntityID  string    `json:"entityId"`
	Table     string    `json:"table"`
	LockedBy  string    `json:"lockedBy"`
	LockedAt  time.Time `json:"lockedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LockResponse struct {
	Lock *Lock `json:"lock"`
}

// TaxonomyNode is a term of a classification tree. Imports send nodes flat
// with ParentID; trees are returned nested in Children.
type TaxonomyNode struct {
	ID          string            `json:"id" validate:"required,uuid"`
	ParentID    string            `json:"parentId,omitempty" validate:"omitempty,uuid"`
	Code        string            `json:"code,omitempty" validate:"max=50"`
	URI         string            `json:"uri,omitempty" validate:"omitempty,uri,max=500"`
	OrderNumber int               `json:"orderNumber,omitempty"`
	Names       map[string]string `json:"names,omitempty"`
	Name        string            `json:"name,omitempty"`
	Children    []*TaxonomyNode   `json:"children,omitempty"`
}

type ImportTaxonomyRequest struct {
	Taxonomy string          `json:"taxonomy" validate:"required,oneof=ontology_term service_class life_event target_group organization_type digital_authorization industrial_class"`
	Nodes    []*TaxonomyNode `json:"nodes" validate:"required,min=1,dive,required"`
}

type ImportTaxonomyResponse struct {
	Imported int `json:"imported"`
}

type GetTaxonomyTreeRequest struct {
	Taxonomy string `json:"taxonomy" validate:"required,oneof=ontology_term service_class life_event target_group organization_type digital_authorization industrial_class"`
	Language string `json:"language,omitempty"`
}

type GetTaxonomyTreeResponse struct {
	Roots []*TaxonomyNode `json:"roots"`
}

type GetTaxonomyAncestorsRequest struct {
	Taxonomy string `json:"taxonomy" validate:"required,oneof=ontology_term service_class life_event target_group organization_type digital_authorization industrial_class"`
	ID       string `json:"id" validate:"required,uuid"`
	Language string `json:"language,omitempty"`
}

type GetTaxonomyAncestorsResponse struct {
	Nodes []*TaxonomyNode `json:"nodes"`
}

// ApplySchedulesRequest runs the validity schedule at Now, or at the server
// time when Now is not set.
type ApplySchedulesRequest struct {
	Now *time.Time `json:"now,omitempty"`
}

type ScheduledChange struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	VersionID string `json:"versionId"`
	Operation string `json:"operation"`
}

type ApplySchedulesResponse struct {
	Changes []*ScheduledChange `json:"changes"`
}

type CheckIntegrityRequest struct{}

type Problem struct {
	Kind   string `json:"kind,omitempty"`
	Check  string `json:"check"`
	ID     string `json:"id"`
	Detail string `json:"detail,omitempty"`
}

type CheckIntegrityResponse struct {
	Problems []*Problem `json:"problems"`
}
