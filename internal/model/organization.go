package model

import "time"

// Organization is the root of the organization aggregate.
type Organization struct {
	ID string `gorm:"primaryKey;type:uuid"`
	Auditing
	Versions []OrganizationVersioned `gorm:"foreignKey:UnificRootID;constraint:OnDelete:CASCADE"`
}

func (Organization) TableName() string {
	return "organizations"
}

// OrganizationVersioned is one revision of an organization. OrganizationID
// points to the parent organization root, if any.
type OrganizationVersioned struct {
	ID                 string                `gorm:"primaryKey;type:uuid"`
	UnificRootID       string                `gorm:"type:uuid;not null;index:IX_OrgVer_UnificRootId"`
	VersioningID       string                `gorm:"type:uuid;not null;index:IX_OrgVer_VersioningId"`
	Versioning         *Versioning           `gorm:"foreignKey:VersioningID"`
	PublishingStatusID string                `gorm:"size:20;not null;index:IX_OrgVer_PublishingStatusId"`
	PublishingStatus   *PublishingStatusType `gorm:"foreignKey:PublishingStatusID"`
	OrganizationID     *string               `gorm:"type:uuid;index:IX_OrgVer_OrganizationId"`
	TypeCode           string                `gorm:"size:50"`
	ValidFrom          *time.Time
	ValidTo            *time.Time
	LastOperationType  string `gorm:"-:migration"`
	Auditing

	Names                  []OrganizationName                 `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Descriptions           []OrganizationDescription          `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	LanguageAvailabilities []OrganizationLanguageAvailability `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Areas                  []OrganizationArea                 `gorm:"foreignKey:OrganizationVersionedID;constraint:OnDelete:CASCADE"`
}

func (OrganizationVersioned) TableName() string {
	return "organization_versioned"
}

type OrganizationName struct {
	ParentID       string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_OrgNam_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	TypeCode       string    `gorm:"primaryKey;size:30"`
	Type           *NameType `gorm:"foreignKey:TypeCode"`
	Value          string    `gorm:"not null"`
	Auditing
}

func (OrganizationName) TableName() string {
	return "organization_names"
}

type OrganizationDescription struct {
	ParentID       string           `gorm:"primaryKey;type:uuid"`
	LocalizationID string           `gorm:"primaryKey;type:uuid;index:IX_OrgDes_LocalizationId"`
	Localization   *Language        `gorm:"foreignKey:LocalizationID"`
	TypeCode       string           `gorm:"primaryKey;size:30"`
	Type           *DescriptionType `gorm:"foreignKey:TypeCode"`
	Value          string
	Auditing
}

func (OrganizationDescription) TableName() string {
	return "organization_descriptions"
}

type OrganizationLanguageAvailability struct {
	ParentID   string                `gorm:"primaryKey;type:uuid"`
	LanguageID string                `gorm:"primaryKey;type:uuid;index:IX_OrgLanAva_LanguageId"`
	Language   *Language             `gorm:"foreignKey:LanguageID"`
	StatusID   string                `gorm:"size:20;not null"`
	Status     *PublishingStatusType `gorm:"foreignKey:StatusID"`
	Reviewed   *time.Time
	ReviewedBy string `gorm:"size:100"`
	Auditing
}

func (OrganizationLanguageAvailability) TableName() string {
	return "organization_language_availabilities"
}

// OrganizationArea lists the municipality or region codes an organization covers.
type OrganizationArea struct {
	OrganizationVersionedID string `gorm:"primaryKey;type:uuid"`
	AreaCode                string `gorm:"primaryKey;size:20"`
	Auditing
}

func (OrganizationArea) TableName() string {
	return "organization_areas"
}
