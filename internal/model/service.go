package model

import "time"

// Service is the root of the service aggregate.
type Service struct {
	ID string `gorm:"primaryKey;type:uuid"`
	Auditing
	Versions []ServiceVersioned      `gorm:"foreignKey:UnificRootID;constraint:OnDelete:CASCADE"`
	Channels []ServiceServiceChannel `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

func (Service) TableName() string {
	return "services"
}

// ServiceVersioned is one revision of a service. OrganizationID is the
// responsible organization root.
type ServiceVersioned struct {
	ID                 string                `gorm:"primaryKey;type:uuid"`
	UnificRootID       string                `gorm:"type:uuid;not null;index:IX_SerVer_UnificRootId"`
	VersioningID       string                `gorm:"type:uuid;not null;index:IX_SerVer_VersioningId"`
	Versioning         *Versioning           `gorm:"foreignKey:VersioningID"`
	PublishingStatusID string                `gorm:"size:20;not null;index:IX_SerVer_PublishingStatusId"`
	PublishingStatus   *PublishingStatusType `gorm:"foreignKey:PublishingStatusID"`
	OrganizationID     *string               `gorm:"type:uuid;index:IX_SerVer_OrganizationId"`
	TypeCode           string                `gorm:"size:50"`
	ValidFrom          *time.Time
	ValidTo            *time.Time
	LastOperationType  string              `gorm:"-:migration"`
	FundingTypeID      string              `gorm:"type:uuid;not null;default:'5f3a7b0e-4c52-4a8e-9d1f-3e0c1d7f2a10'"`
	FundingType        *ServiceFundingType `gorm:"foreignKey:FundingTypeID"`
	Auditing

	Names                  []ServiceName                 `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Descriptions           []ServiceDescription          `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	LanguageAvailabilities []ServiceLanguageAvailability `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	OntologyTerms          []ServiceOntologyTerm         `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	ServiceClasses         []ServiceServiceClass         `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	LifeEvents             []ServiceLifeEvent            `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	TargetGroups           []ServiceTargetGroup          `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (ServiceVersioned) TableName() string {
	return "service_versioned"
}

type ServiceName struct {
	ParentID       string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_SerNam_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	TypeCode       string    `gorm:"primaryKey;size:30"`
	Type           *NameType `gorm:"foreignKey:TypeCode"`
	Value          string    `gorm:"not null"`
	Auditing
}

func (ServiceName) TableName() string {
	return "service_names"
}

type ServiceDescription struct {
	ParentID       string           `gorm:"primaryKey;type:uuid"`
	LocalizationID string           `gorm:"primaryKey;type:uuid;index:IX_SerDes_LocalizationId"`
	Localization   *Language        `gorm:"foreignKey:LocalizationID"`
	TypeCode       string           `gorm:"primaryKey;size:30"`
	Type           *DescriptionType `gorm:"foreignKey:TypeCode"`
	Value          string
	Auditing
}

func (ServiceDescription) TableName() string {
	return "service_descriptions"
}

type ServiceLanguageAvailability struct {
	ParentID   string                `gorm:"primaryKey;type:uuid"`
	LanguageID string                `gorm:"primaryKey;type:uuid;index:IX_SerLanAva_LanguageId"`
	Language   *Language             `gorm:"foreignKey:LanguageID"`
	StatusID   string                `gorm:"size:20;not null"`
	Status     *PublishingStatusType `gorm:"foreignKey:StatusID"`
	Reviewed   *time.Time
	ReviewedBy string `gorm:"size:100"`
	Auditing
}

func (ServiceLanguageAvailability) TableName() string {
	return "service_language_availabilities"
}

type ServiceOntologyTerm struct {
	ParentID string        `gorm:"primaryKey;type:uuid"`
	TermID   string        `gorm:"primaryKey;type:uuid;index:IX_SerOntTer_TermId"`
	Term     *OntologyTerm `gorm:"foreignKey:TermID"`
	Auditing
}

func (ServiceOntologyTerm) TableName() string {
	return "service_ontology_terms"
}

type ServiceServiceClass struct {
	ParentID string        `gorm:"primaryKey;type:uuid"`
	TermID   string        `gorm:"primaryKey;type:uuid;index:IX_SerSerCla_TermId"`
	Term     *ServiceClass `gorm:"foreignKey:TermID"`
	Auditing
}

func (ServiceServiceClass) TableName() string {
	return "service_service_classes"
}

type ServiceLifeEvent struct {
	ParentID string     `gorm:"primaryKey;type:uuid"`
	TermID   string     `gorm:"primaryKey;type:uuid;index:IX_SerLifEve_TermId"`
	Term     *LifeEvent `gorm:"foreignKey:TermID"`
	Auditing
}

func (ServiceLifeEvent) TableName() string {
	return "service_life_events"
}

type ServiceTargetGroup struct {
	ParentID string       `gorm:"primaryKey;type:uuid"`
	TermID   string       `gorm:"primaryKey;type:uuid;index:IX_SerTarGro_TermId"`
	Term     *TargetGroup `gorm:"foreignKey:TermID"`
	Auditing
}

func (ServiceTargetGroup) TableName() string {
	return "service_target_groups"
}

// ServiceServiceChannel connects a service root with a service channel root.
type ServiceServiceChannel struct {
	ServiceID        string `gorm:"primaryKey;type:uuid"`
	ServiceChannelID string `gorm:"primaryKey;type:uuid;index:IX_SerSerCha_ServiceChannelId"`
	OrderNumber      int
	Auditing
}

func (ServiceServiceChannel) TableName() string {
	return "service_service_channels"
}
