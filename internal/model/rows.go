package model

import "time"

// The row types below have the column layout every aggregate kind shares. The
// store reads and writes them against the table set of a Kind, while the
// concrete per-kind models declare the same columns with their constraints.

// RootRow is the identity row of an aggregate.
type RootRow struct {
	ID string
	Auditing
}

// VersionedRow is one revision of an aggregate.
type VersionedRow struct {
	ID                 string
	UnificRootID       string
	VersioningID       string
	PublishingStatusID string
	OrganizationID     *string
	TypeCode           string
	ValidFrom          *time.Time
	ValidTo            *time.Time
	LastOperationType  string
	Auditing
}

// LocalizedText is a name or a description of a version in one language.
type LocalizedText struct {
	ParentID       string
	LocalizationID string
	TypeCode       string
	Value          string
	Auditing
}

// LanguageAvailability is the publishing status of one language of a version.
type LanguageAvailability struct {
	ParentID   string
	LanguageID string
	StatusID   string
	Reviewed   *time.Time
	ReviewedBy string
	Auditing
}

// TermLink associates a service version with a taxonomy term.
type TermLink struct {
	ParentID string
	TermID   string
	Auditing
}

// TaxonomyNode is one term of a classification tree.
type TaxonomyNode struct {
	ID          string
	ParentID    *string
	Code        string
	URI         string
	OrderNumber int
	Auditing
}
