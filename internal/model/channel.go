package model

import "time"

// Service channel types stored in ServiceChannelVersioned.TypeCode.
const (
	ChannelTypeElectronic      = "electronic"
	ChannelTypePrintableForm   = "printable_form"
	ChannelTypeServiceLocation = "service_location"
	ChannelTypeWebPage         = "web_page"
	ChannelTypePhone           = "phone"
)

// Address characters of a service channel address.
const (
	AddressCharacterVisiting = "visiting"
	AddressCharacterPostal   = "postal"
	AddressCharacterDelivery = "delivery"
)

// ServiceChannel is the root of the service channel aggregate.
type ServiceChannel struct {
	ID string `gorm:"primaryKey;type:uuid"`
	Auditing
	Versions []ServiceChannelVersioned `gorm:"foreignKey:UnificRootID;constraint:OnDelete:CASCADE"`
	Services []ServiceServiceChannel   `gorm:"foreignKey:ServiceChannelID;constraint:OnDelete:CASCADE"`
}

func (ServiceChannel) TableName() string {
	return "service_channels"
}

type ServiceChannelVersioned struct {
	ID                 string                `gorm:"primaryKey;type:uuid"`
	UnificRootID       string                `gorm:"type:uuid;not null;index:IX_SerChaVer_UnificRootId"`
	VersioningID       string                `gorm:"type:uuid;not null;index:IX_SerChaVer_VersioningId"`
	Versioning         *Versioning           `gorm:"foreignKey:VersioningID"`
	PublishingStatusID string                `gorm:"size:20;not null;index:IX_SerChaVer_PublishingStatusId"`
	PublishingStatus   *PublishingStatusType `gorm:"foreignKey:PublishingStatusID"`
	OrganizationID     *string               `gorm:"type:uuid;index:IX_SerChaVer_OrganizationId"`
	TypeCode           string                `gorm:"size:50;not null"`
	ValidFrom          *time.Time
	ValidTo            *time.Time
	LastOperationType  string `gorm:"-:migration"`
	Auditing

	Names                  []ServiceChannelName                 `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Descriptions           []ServiceChannelDescription          `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	LanguageAvailabilities []ServiceChannelLanguageAvailability `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Keywords               []ServiceChannelKeyword              `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Addresses              []Address                            `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	WebPages               []ServiceChannelWebPage              `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (ServiceChannelVersioned) TableName() string {
	return "service_channel_versioned"
}

type ServiceChannelName struct {
	ParentID       string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_SerChaNam_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	TypeCode       string    `gorm:"primaryKey;size:30"`
	Type           *NameType `gorm:"foreignKey:TypeCode"`
	Value          string    `gorm:"not null"`
	Auditing
}

func (ServiceChannelName) TableName() string {
	return "service_channel_names"
}

type ServiceChannelDescription struct {
	ParentID       string           `gorm:"primaryKey;type:uuid"`
	LocalizationID string           `gorm:"primaryKey;type:uuid;index:IX_SerChaDes_LocalizationId"`
	Localization   *Language        `gorm:"foreignKey:LocalizationID"`
	TypeCode       string           `gorm:"primaryKey;size:30"`
	Type           *DescriptionType `gorm:"foreignKey:TypeCode"`
	Value          string
	Auditing
}

func (ServiceChannelDescription) TableName() string {
	return "service_channel_descriptions"
}

type ServiceChannelLanguageAvailability struct {
	ParentID   string                `gorm:"primaryKey;type:uuid"`
	LanguageID string                `gorm:"primaryKey;type:uuid;index:IX_SerChaLanAva_LanguageId"`
	Language   *Language             `gorm:"foreignKey:LanguageID"`
	StatusID   string                `gorm:"size:20;not null"`
	Status     *PublishingStatusType `gorm:"foreignKey:StatusID"`
	Reviewed   *time.Time
	ReviewedBy string `gorm:"size:100"`
	Auditing
}

func (ServiceChannelLanguageAvailability) TableName() string {
	return "service_channel_language_availabilities"
}

// Keyword is a free search word in one language, shared between channels.
type Keyword struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"type:uuid;not null;uniqueIndex:IX_Key_LocalizationId_Name"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	Name           string    `gorm:"size:150;not null;uniqueIndex:IX_Key_LocalizationId_Name"`
	Auditing
}

func (Keyword) TableName() string {
	return "keywords"
}

type ServiceChannelKeyword struct {
	ParentID  string   `gorm:"primaryKey;type:uuid"`
	KeywordID string   `gorm:"primaryKey;type:uuid;index:IX_SerChaKey_KeywordId"`
	Keyword   *Keyword `gorm:"foreignKey:KeywordID;constraint:OnDelete:CASCADE"`
	Auditing
}

func (ServiceChannelKeyword) TableName() string {
	return "service_channel_keywords"
}

// Address is one entry of the ordered address collection of a channel version.
type Address struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	ParentID      string `gorm:"type:uuid;not null;index:IX_Add_ParentId"`
	CharacterCode string `gorm:"size:20;not null"`
	OrderNumber   int    `gorm:"not null"`
	PostalCode    string `gorm:"size:10"`
	Municipality  string `gorm:"size:10"`
	CountryCode   string `gorm:"size:2"`
	Latitude      *float64
	Longitude     *float64
	Auditing
	Streets []AddressStreet `gorm:"foreignKey:AddressID;constraint:OnDelete:CASCADE"`
}

func (Address) TableName() string {
	return "addresses"
}

type AddressStreet struct {
	AddressID      string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_AddStr_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	Street         string    `gorm:"size:100;not null"`
	StreetNumber   string    `gorm:"size:30"`
	Auditing
}

func (AddressStreet) TableName() string {
	return "address_streets"
}

type ServiceChannelWebPage struct {
	ParentID       string    `gorm:"primaryKey;type:uuid"`
	LocalizationID string    `gorm:"primaryKey;type:uuid;index:IX_SerChaWebPag_LocalizationId"`
	Localization   *Language `gorm:"foreignKey:LocalizationID"`
	URL            string    `gorm:"size:500;not null"`
	Auditing
}

func (ServiceChannelWebPage) TableName() string {
	return "service_channel_web_pages"
}
