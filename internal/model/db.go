package model

import "gorm.io/gorm"

// Migrate creates or updates every catalog table. Seed rows and hand written
// schema changes are applied afterwards by the migrations package.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Language{},
		&PublishingStatusType{},
		&NameType{},
		&DescriptionType{},
		&ServiceFundingType{},
		&Versioning{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&OntologyTerm{},
		&ServiceClass{},
		&LifeEvent{},
		&TargetGroup{},
		&OrganizationType{},
		&DigitalAuthorization{},
		&IndustrialClass{},
		&TaxonomyName{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&Organization{},
		&OrganizationVersioned{},
		&OrganizationName{},
		&OrganizationDescription{},
		&OrganizationLanguageAvailability{},
		&OrganizationArea{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&GeneralDescription{},
		&GeneralDescriptionVersioned{},
		&GeneralDescriptionName{},
		&GeneralDescriptionDescription{},
		&GeneralDescriptionLanguageAvailability{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&Service{},
		&ServiceVersioned{},
		&ServiceName{},
		&ServiceDescription{},
		&ServiceLanguageAvailability{},
		&ServiceOntologyTerm{},
		&ServiceServiceClass{},
		&ServiceLifeEvent{},
		&ServiceTargetGroup{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&ServiceChannel{},
		&ServiceChannelVersioned{},
		&ServiceChannelName{},
		&ServiceChannelDescription{},
		&ServiceChannelLanguageAvailability{},
		&Keyword{},
		&ServiceChannelKeyword{},
		&Address{},
		&AddressStreet{},
		&ServiceChannelWebPage{},
		&ServiceServiceChannel{},
	); err != nil {
		return err
	}

	return db.AutoMigrate(&Locking{})
}
