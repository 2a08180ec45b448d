package model

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown kind")

// Kind names one aggregate type of the catalog.
type Kind string

const (
	KindOrganization       Kind = "organization"
	KindService            Kind = "service"
	KindServiceChannel     Kind = "service_channel"
	KindGeneralDescription Kind = "general_description"
)

// Kinds lists every aggregate kind in dependency order.
var Kinds = []Kind{KindOrganization, KindGeneralDescription, KindService, KindServiceChannel}

// Tables is the table set that stores one aggregate kind.
type Tables struct {
	Root         string
	Versioned    string
	Name         string
	Description  string
	Availability string
}

var kindTables = map[Kind]Tables{
	KindOrganization: {
		Root:         "organizations",
		Versioned:    "organization_versioned",
		Name:         "organization_names",
		Description:  "organization_descriptions",
		Availability: "organization_language_availabilities",
	},
	KindService: {
		Root:         "services",
		Versioned:    "service_versioned",
		Name:         "service_names",
		Description:  "service_descriptions",
		Availability: "service_language_availabilities",
	},
	KindServiceChannel: {
		Root:         "service_channels",
		Versioned:    "service_channel_versioned",
		Name:         "service_channel_names",
		Description:  "service_channel_descriptions",
		Availability: "service_channel_language_availabilities",
	},
	KindGeneralDescription: {
		Root:         "general_descriptions",
		Versioned:    "general_description_versioned",
		Name:         "general_description_names",
		Description:  "general_description_descriptions",
		Availability: "general_description_language_availabilities",
	},
}

func (k Kind) Valid() bool {
	_, ok := kindTables[k]
	return ok
}

func (k Kind) Tables() Tables {
	return kindTables[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts the kind names used by the API and the CLI.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// TaxonomyKind names one classification tree.
type TaxonomyKind string

const (
	TaxonomyOntologyTerm         TaxonomyKind = "ontology_term"
	TaxonomyServiceClass         TaxonomyKind = "service_class"
	TaxonomyLifeEvent            TaxonomyKind = "life_event"
	TaxonomyTargetGroup          TaxonomyKind = "target_group"
	TaxonomyOrganizationType     TaxonomyKind = "organization_type"
	TaxonomyDigitalAuthorization TaxonomyKind = "digital_authorization"
	TaxonomyIndustrialClass      TaxonomyKind = "industrial_class"
)

var TaxonomyKinds = []TaxonomyKind{
	TaxonomyOntologyTerm,
	TaxonomyServiceClass,
	TaxonomyLifeEvent,
	TaxonomyTargetGroup,
	TaxonomyOrganizationType,
	TaxonomyDigitalAuthorization,
	TaxonomyIndustrialClass,
}

var taxonomyTables = map[TaxonomyKind]string{
	TaxonomyOntologyTerm:         "ontology_terms",
	TaxonomyServiceClass:         "service_classes",
	TaxonomyLifeEvent:            "life_events",
	TaxonomyTargetGroup:          "target_groups",
	TaxonomyOrganizationType:     "organization_types",
	TaxonomyDigitalAuthorization: "digital_authorizations",
	TaxonomyIndustrialClass:      "industrial_classes",
}

// serviceLinkTables maps the taxonomies a service version can be classified with.
var serviceLinkTables = map[TaxonomyKind]string{
	TaxonomyOntologyTerm: "service_ontology_terms",
	TaxonomyServiceClass: "service_service_classes",
	TaxonomyLifeEvent:    "service_life_events",
	TaxonomyTargetGroup:  "service_target_groups",
}

func (t TaxonomyKind) Valid() bool {
	_, ok := taxonomyTables[t]
	return ok
}

func (t TaxonomyKind) Table() string {
	return taxonomyTables[t]
}

// ServiceLinkTable returns the association table between service versions and
// terms of this taxonomy, or false when services cannot reference it.
func (t TaxonomyKind) ServiceLinkTable() (string, bool) {
	table, ok := serviceLinkTables[t]
	return table, ok
}

func ParseTaxonomyKind(s string) (TaxonomyKind, error) {
	t := TaxonomyKind(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: taxonomy %q", ErrUnknownKind, s)
	}
	return t, nil
}
