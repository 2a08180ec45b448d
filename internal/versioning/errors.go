package versioning

import "errors"

var (
	ErrUnknownStatus       = errors.New("unknown publishing status")
	ErrUnknownLanguage     = errors.New("unknown language")
	ErrDuplicateVersion    = errors.New("duplicate version")
	ErrForeignVersion      = errors.New("version belongs to another root")
	ErrDanglingPrevious    = errors.New("previous version not found")
	ErrCycle               = errors.New("version chain contains a cycle")
	ErrForkedHistory       = errors.New("version history is forked")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvariant           = errors.New("version invariant violated")
	ErrNoVersion           = errors.New("aggregate has no versions")
	ErrNotPublished        = errors.New("aggregate has no published version")
	ErrNothingToPublish    = errors.New("no working version to publish")
	ErrNoLanguage          = errors.New("no language given")
	ErrLanguageUnavailable = errors.New("language has no content")
	ErrDeleted             = errors.New("aggregate is deleted")
	ErrNotDeleted          = errors.New("aggregate is not deleted")
)
