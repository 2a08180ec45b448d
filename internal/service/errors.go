package service

import (
	"context"
	"errors"

	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/taxonomy"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrInvalidArgument is returned when a request cannot be applied to the entity kind.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLocked is returned when another user holds the edit lock of an entity.
	ErrLocked = errors.New("entity is locked by another user")
	// ErrVersionMismatch is returned when an update was based on an outdated version.
	ErrVersionMismatch = errors.New("entity has been modified since the expected version")
	// ErrUnknownTerm is returned when a classification refers to a term missing from its taxonomy.
	ErrUnknownTerm = errors.New("unknown taxonomy term")
	// ErrUnknownFundingType is returned for a funding type code that is not seeded.
	ErrUnknownFundingType = errors.New("unknown funding type")
	// ErrCorrupted is returned when stored rows break the version history rules.
	ErrCorrupted = errors.New("stored entity is corrupted")
)

// toStatus converts service, store and versioning errors to gRPC status errors.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Internal
	switch {
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, versioning.ErrNoVersion),
		errors.Is(err, taxonomy.ErrNodeNotFound):
		code = codes.NotFound
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrUnknownTerm),
		errors.Is(err, ErrUnknownFundingType),
		errors.Is(err, model.ErrUnknownKind),
		errors.Is(err, versioning.ErrUnknownLanguage),
		errors.Is(err, versioning.ErrUnknownStatus),
		errors.Is(err, versioning.ErrNoLanguage),
		errors.Is(err, versioning.ErrLanguageUnavailable),
		errors.Is(err, taxonomy.ErrDuplicateNode),
		errors.Is(err, taxonomy.ErrMissingParent),
		errors.Is(err, taxonomy.ErrCycle):
		code = codes.InvalidArgument
	case errors.Is(err, ErrLocked):
		code = codes.Aborted
	case errors.Is(err, store.ErrConflict):
		code = codes.AlreadyExists
	case errors.Is(err, ErrVersionMismatch),
		errors.Is(err, versioning.ErrNotPublished),
		errors.Is(err, versioning.ErrNothingToPublish),
		errors.Is(err, versioning.ErrDeleted),
		errors.Is(err, versioning.ErrNotDeleted),
		errors.Is(err, versioning.ErrInvalidTransition),
		errors.Is(err, store.ErrForeignKey):
		code = codes.FailedPrecondition
	case errors.Is(err, ErrCorrupted),
		errors.Is(err, versioning.ErrInvariant),
		errors.Is(err, versioning.ErrCycle),
		errors.Is(err, versioning.ErrForkedHistory),
		errors.Is(err, versioning.ErrDanglingPrevious),
		errors.Is(err, versioning.ErrDuplicateVersion),
		errors.Is(err, versioning.ErrForeignVersion):
		code = codes.DataLoss
	}

	return status.New(code, err.Error()).Err()
}

func toStatusCode(err error) string {
	return status.Code(toStatus(err)).String()
}
