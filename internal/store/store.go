package store

import (
	"context"
	"time"

	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
)

type Store interface {
	CodeStore
	AggregateStore
	ContentStore
	ConnectionStore
	TaxonomyStore
	LockStore
	IntegrityStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type CodeStore interface {
	// ListLanguages returns the catalog languages in display order.
	ListLanguages(ctx context.Context) ([]*model.Language, error)
	// ListServiceFundingTypes returns the known funding types.
	ListServiceFundingTypes(ctx context.Context) ([]*model.ServiceFundingType, error)
}

// VersionFilter selects versioned rows of one kind.
type VersionFilter struct {
	Statuses       []string
	OrganizationID string
	Offset         int
	Limit          int
}

type AggregateStore interface {
	// CreateRoot creates the identity row of an aggregate.
	CreateRoot(ctx context.Context, kind model.Kind, root *model.RootRow) error
	// GetRoot retrieves a root by ID.
	GetRoot(ctx context.Context, kind model.Kind, id string) (*model.RootRow, error)
	// LockRoot retrieves a root and holds its row lock until the transaction
	// ends, so writers of one aggregate run one after another.
	LockRoot(ctx context.Context, kind model.Kind, id string) (*model.RootRow, error)
	// EraseRoot hard deletes a root, its versions and everything below them.
	EraseRoot(ctx context.Context, kind model.Kind, id string) error
	// CreateVersioning creates a version chain link.
	CreateVersioning(ctx context.Context, v *model.Versioning) error
	// UpdateVersionNumber sets the version number of a chain link.
	UpdateVersionNumber(ctx context.Context, id string, major, minor int, actor string) error
	// ListVersionings retrieves the chain links of a root.
	ListVersionings(ctx context.Context, rootID string) ([]*model.Versioning, error)
	// CreateVersion creates a versioned row.
	CreateVersion(ctx context.Context, kind model.Kind, row *model.VersionedRow) error
	// GetVersion retrieves a versioned row by ID.
	GetVersion(ctx context.Context, kind model.Kind, id string) (*model.VersionedRow, error)
	// ListVersions retrieves every versioned row of a root.
	ListVersions(ctx context.Context, kind model.Kind, rootID string) ([]*model.VersionedRow, error)
	// FilterVersions retrieves one versioned row per root matching the filter,
	// most recently modified first, and the number of matching roots.
	FilterVersions(ctx context.Context, kind model.Kind, filter VersionFilter) ([]*model.VersionedRow, int64, error)
	// UpdateVersionStatus sets the publishing status and last operation of a versioned row.
	UpdateVersionStatus(ctx context.Context, kind model.Kind, id, status, operation, actor string) error
	// SetLanguageStatus creates or updates the availability of one language of a version.
	SetLanguageStatus(ctx context.Context, kind model.Kind, availability *model.LanguageAvailability) error
	// ListLanguageStatuses retrieves the availabilities of the given versions.
	ListLanguageStatuses(ctx context.Context, kind model.Kind, versionIDs []string) ([]*model.LanguageAvailability, error)
	// ListScheduledRoots returns roots having a working version whose validity
	// has started or a published version whose validity has ended at now.
	ListScheduledRoots(ctx context.Context, kind model.Kind, now time.Time) ([]string, error)
}

type ContentStore interface {
	// CreateNames stores names of a version.
	CreateNames(ctx context.Context, kind model.Kind, names []*model.LocalizedText) error
	// ListNames retrieves names of a version.
	ListNames(ctx context.Context, kind model.Kind, versionID string) ([]*model.LocalizedText, error)
	// CreateDescriptions stores descriptions of a version.
	CreateDescriptions(ctx context.Context, kind model.Kind, descriptions []*model.LocalizedText) error
	// ListDescriptions retrieves descriptions of a version.
	ListDescriptions(ctx context.Context, kind model.Kind, versionID string) ([]*model.LocalizedText, error)

	CreateOrganizationAreas(ctx context.Context, areas []*model.OrganizationArea) error
	ListOrganizationAreas(ctx context.Context, versionID string) ([]*model.OrganizationArea, error)

	// CreateServiceTerms links a service version to terms of a taxonomy.
	CreateServiceTerms(ctx context.Context, taxonomy model.TaxonomyKind, links []*model.TermLink) error
	ListServiceTerms(ctx context.Context, taxonomy model.TaxonomyKind, versionID string) ([]*model.TermLink, error)
	SetServiceFundingType(ctx context.Context, versionID, fundingTypeID string) error
	GetServiceFundingType(ctx context.Context, versionID string) (string, error)

	// CreateChannelKeywords links keywords to a channel version, creating
	// missing keywords.
	CreateChannelKeywords(ctx context.Context, versionID string, keywords []*model.Keyword, actor string) error
	ListChannelKeywords(ctx context.Context, versionID string) ([]*model.Keyword, error)
	CreateAddresses(ctx context.Context, addresses []*model.Address) error
	// ListAddresses retrieves addresses with their streets in order.
	ListAddresses(ctx context.Context, versionID string) ([]*model.Address, error)
	CreateWebPages(ctx context.Context, pages []*model.ServiceChannelWebPage) error
	ListWebPages(ctx context.Context, versionID string) ([]*model.ServiceChannelWebPage, error)
}

// ConnectionFilter selects service channel connections. Empty fields match all.
type ConnectionFilter struct {
	ServiceID string
	ChannelID string
	// ExcludeDeleted hides connections whose service or channel is deleted.
	// The rows are kept so a restore brings them back.
	ExcludeDeleted bool
}

type ConnectionStore interface {
	// Connect creates or reorders a connection between a service and a channel.
	Connect(ctx context.Context, conn *model.ServiceServiceChannel) error
	// Disconnect removes a connection.
	Disconnect(ctx context.Context, serviceID, channelID string) error
	ListConnections(ctx context.Context, filter ConnectionFilter) ([]*model.ServiceServiceChannel, error)
}

type TaxonomyStore interface {
	// UpsertTaxonomyNodes creates or updates nodes. Parents must come before
	// their children.
	UpsertTaxonomyNodes(ctx context.Context, kind model.TaxonomyKind, nodes []*model.TaxonomyNode) error
	UpsertTaxonomyNames(ctx context.Context, names []*model.TaxonomyName) error
	ListTaxonomyNodes(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyNode, error)
	ListTaxonomyNames(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyName, error)
}

type LockStore interface {
	// GetLock retrieves the lock on an entity.
	GetLock(ctx context.Context, entityID, table string) (*model.Locking, error)
	// AcquireLock takes the lock on an entity unless another holder has a lock
	// younger than ttl, in which case that lock is returned with ErrConflict.
	AcquireLock(ctx context.Context, lock *model.Locking, ttl time.Duration) (*model.Locking, error)
	// ReleaseLock removes the lock held by holder.
	ReleaseLock(ctx context.Context, entityID, table, holder string) error
	// DeleteExpiredLocks removes locks taken before the given time.
	DeleteExpiredLocks(ctx context.Context, before time.Time) (int64, error)
}

type IntegrityStore interface {
	// ListOrphanedVersions returns versioned rows whose root does not exist.
	ListOrphanedVersions(ctx context.Context, kind model.Kind) ([]string, error)
	// ListVersioningLinks maps every chain link to its previous link.
	ListVersioningLinks(ctx context.Context) (map[string]string, error)
	// ListUnknownLanguageStatuses returns availabilities pointing to unknown languages.
	ListUnknownLanguageStatuses(ctx context.Context, kind model.Kind) ([]*model.LanguageAvailability, error)
	// ListMultiplyPublished returns roots having more than one published version.
	ListMultiplyPublished(ctx context.Context, kind model.Kind) ([]string, error)
}
