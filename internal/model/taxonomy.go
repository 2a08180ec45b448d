package model

// Taxonomy trees share one layout: a flat table of nodes with an optional
// ParentID pointing into the same table. Localized names live in TaxonomyName.

// OntologyTerm is a term of the national service ontology.
type OntologyTerm struct {
	ID          string        `gorm:"primaryKey;type:uuid"`
	ParentID    *string       `gorm:"type:uuid;index:IX_OntTer_ParentId"`
	Parent      *OntologyTerm `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string        `gorm:"size:50;index:IX_OntTer_Code"`
	URI         string        `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (OntologyTerm) TableName() string {
	return "ontology_terms"
}

type ServiceClass struct {
	ID          string        `gorm:"primaryKey;type:uuid"`
	ParentID    *string       `gorm:"type:uuid;index:IX_SerCla_ParentId"`
	Parent      *ServiceClass `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string        `gorm:"size:50;index:IX_SerCla_Code"`
	URI         string        `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (ServiceClass) TableName() string {
	return "service_classes"
}

type LifeEvent struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	ParentID    *string    `gorm:"type:uuid;index:IX_LifEve_ParentId"`
	Parent      *LifeEvent `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string     `gorm:"size:50;index:IX_LifEve_Code"`
	URI         string     `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (LifeEvent) TableName() string {
	return "life_events"
}

type TargetGroup struct {
	ID          string       `gorm:"primaryKey;type:uuid"`
	ParentID    *string      `gorm:"type:uuid;index:IX_TarGro_ParentId"`
	Parent      *TargetGroup `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string       `gorm:"size:50;index:IX_TarGro_Code"`
	URI         string       `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (TargetGroup) TableName() string {
	return "target_groups"
}

type OrganizationType struct {
	ID          string            `gorm:"primaryKey;type:uuid"`
	ParentID    *string           `gorm:"type:uuid;index:IX_OrgTyp_ParentId"`
	Parent      *OrganizationType `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string            `gorm:"size:50;index:IX_OrgTyp_Code"`
	URI         string            `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (OrganizationType) TableName() string {
	return "organization_types"
}

type DigitalAuthorization struct {
	ID          string                `gorm:"primaryKey;type:uuid"`
	ParentID    *string               `gorm:"type:uuid;index:IX_DigAut_ParentId"`
	Parent      *DigitalAuthorization `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string                `gorm:"size:50;index:IX_DigAut_Code"`
	URI         string                `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (DigitalAuthorization) TableName() string {
	return "digital_authorizations"
}

// IndustrialClass is a node of the TOL 2008 industry classification.
type IndustrialClass struct {
	ID          string           `gorm:"primaryKey;type:uuid"`
	ParentID    *string          `gorm:"type:uuid;index:IX_IndCla_ParentId"`
	Parent      *IndustrialClass `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Code        string           `gorm:"size:50;index:IX_IndCla_Code"`
	URI         string           `gorm:"size:500"`
	OrderNumber int
	Auditing
}

func (IndustrialClass) TableName() string {
	return "industrial_classes"
}

// TaxonomyName is the name of a term in one language. Kind tells which tree
// TermID belongs to.
type TaxonomyName struct {
	Kind           string    `gorm:"primaryKey;size:30"`
	TermID         string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_TaxNam_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	Name           string    `gorm:"size:500;not null"`
	Auditing
}

func (TaxonomyName) TableName() string {
	return "taxonomy_names"
}
