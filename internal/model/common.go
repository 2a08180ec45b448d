package model

import "time"

// Auditing carries the audit columns shared by catalog rows.
type Auditing struct {
	Created    time.Time `gorm:"autoCreateTime"`
	CreatedBy  string    `gorm:"size:100"`
	Modified   time.Time `gorm:"autoUpdateTime"`
	ModifiedBy string    `gorm:"size:100"`
}

// NewAuditing stamps both creator and modifier with the same actor.
func NewAuditing(actor string) Auditing {
	now := time.Now().UTC()
	return Auditing{
		Created:    now,
		CreatedBy:  actor,
		Modified:   now,
		ModifiedBy: actor,
	}
}

// Language is a data language of the catalog (fi, sv, en, se, smn, sms).
type Language struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Code        string `gorm:"size:10;not null;uniqueIndex:IX_Lan_Code"`
	OrderNumber int
	IsForData   bool `gorm:"not null;default:true"`
}

func (Language) TableName() string {
	return "languages"
}

// PublishingStatusType is the lifecycle state of a version or a language version.
type PublishingStatusType struct {
	Code        string `gorm:"primaryKey;size:20"`
	OrderNumber int
}

func (PublishingStatusType) TableName() string {
	return "publishing_status_types"
}

type NameType struct {
	Code        string `gorm:"primaryKey;size:30"`
	OrderNumber int
}

func (NameType) TableName() string {
	return "name_types"
}

type DescriptionType struct {
	Code        string `gorm:"primaryKey;size:30"`
	OrderNumber int
}

func (DescriptionType) TableName() string {
	return "description_types"
}

// ServiceFundingType tells how a service is financed.
type ServiceFundingType struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Code        string `gorm:"size:30;not null;uniqueIndex:IX_SerFunTyp_Code"`
	OrderNumber int
}

func (ServiceFundingType) TableName() string {
	return "service_funding_types"
}

// Versioning links one version of an aggregate to the version it was derived from.
type Versioning struct {
	ID                string      `gorm:"primaryKey;type:uuid"`
	PreviousVersionID *string     `gorm:"type:uuid;uniqueIndex:IX_Ver_PreviousVersionId"`
	PreviousVersion   *Versioning `gorm:"foreignKey:PreviousVersionID;constraint:OnDelete:SET NULL"`
	UnificRootID      string      `gorm:"type:uuid;not null;index:IX_Ver_UnificRootId"`
	VersionMajor      int
	VersionMinor      int
	Auditing
}

func (Versioning) TableName() string {
	return "versionings"
}

// Name and description type codes seeded by the migrations.
const (
	NameTypeName          = "name"
	NameTypeAlternateName = "alternate_name"

	DescriptionTypeDescription     = "description"
	DescriptionTypeSummary         = "summary"
	DescriptionTypeUserInstruction = "user_instruction"
)

// DefaultServiceFundingTypeID is the funding type every service gets unless told otherwise.
const DefaultServiceFundingTypeID = "5f3a7b0e-4c52-4a8e-9d1f-3e0c1d7f2a10"
