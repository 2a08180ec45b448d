package model

import "time"

// GeneralDescription is the root of a statutory service general description,
// the nationwide template services can be based on.
type GeneralDescription struct {
	ID string `gorm:"primaryKey;type:uuid"`
	Auditing
	Versions []GeneralDescriptionVersioned `gorm:"foreignKey:UnificRootID;constraint:OnDelete:CASCADE"`
}

func (GeneralDescription) TableName() string {
	return "general_descriptions"
}

type GeneralDescriptionVersioned struct {
	ID                 string                `gorm:"primaryKey;type:uuid"`
	UnificRootID       string                `gorm:"type:uuid;not null;index:IX_GenDesVer_UnificRootId"`
	VersioningID       string                `gorm:"type:uuid;not null;index:IX_GenDesVer_VersioningId"`
	Versioning         *Versioning           `gorm:"foreignKey:VersioningID"`
	PublishingStatusID string                `gorm:"size:20;not null;index:IX_GenDesVer_PublishingStatusId"`
	PublishingStatus   *PublishingStatusType `gorm:"foreignKey:PublishingStatusID"`
	OrganizationID     *string               `gorm:"type:uuid"`
	TypeCode           string                `gorm:"size:50"`
	ValidFrom          *time.Time
	ValidTo            *time.Time
	LastOperationType  string `gorm:"-:migration"`
	Auditing

	Names                  []GeneralDescriptionName                 `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Descriptions           []GeneralDescriptionDescription          `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	LanguageAvailabilities []GeneralDescriptionLanguageAvailability `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (GeneralDescriptionVersioned) TableName() string {
	return "general_description_versioned"
}

type GeneralDescriptionName struct {
	ParentID       string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_GenDesNam_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	TypeCode       string    `gorm:"primaryKey;size:30"`
	Type           *NameType `gorm:"foreignKey:TypeCode"`
	Value          string    `gorm:"not null"`
	Auditing
}

func (GeneralDescriptionName) TableName() string {
	return "general_description_names"
}

type GeneralDescriptionDescription struct {
	ParentID       string           `gorm:"primaryKey;type:uuid"`
	LocalizationID string           `gorm:"primaryKey;type:uuid;index:IX_GenDesDes_LocalizationId"`
	Localization   *Language        `gorm:"foreignKey:LocalizationID"`
	TypeCode       string           `gorm:"primaryKey;size:30"`
	Type           *DescriptionType `gorm:"foreignKey:TypeCode"`
	Value          string
	Auditing
}

func (GeneralDescriptionDescription) TableName() string {
	return "general_description_descriptions"
}

type GeneralDescriptionLanguageAvailability struct {
	ParentID   string                `gorm:"primaryKey;type:uuid"`
	LanguageID string                `gorm:"primaryKey;type:uuid;index:IX_GenDesLanAva_LanguageId"`
	Language   *Language             `gorm:"foreignKey:LanguageID"`
	StatusID   string                `gorm:"size:20;not null"`
	Status     *PublishingStatusType `gorm:"foreignKey:StatusID"`
	Reviewed   *time.Time
	ReviewedBy string `gorm:"size:100"`
	Auditing
}

func (GeneralDescriptionLanguageAvailability) TableName() string {
	return "general_description_language_availabilities"
}
