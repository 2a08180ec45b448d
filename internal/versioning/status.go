package versioning

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Status is the publishing status of a version or of one language of a version.
type Status string

const (
	Draft     Status = "draft"
	Modified  Status = "modified"
	Published Status = "published"
	Archived  Status = "archived"
	Deleted   Status = "deleted"
)

var Statuses = []Status{Draft, Modified, Published, Archived, Deleted}

var transitions = map[Status]mapset.Set[Status]{
	Draft:     mapset.NewSet(Published, Archived, Deleted),
	Modified:  mapset.NewSet(Published, Archived, Deleted),
	Published: mapset.NewSet(Archived, Modified, Deleted),
	Archived:  mapset.NewSet[Status](),
	Deleted:   mapset.NewSet[Status](),
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

// Working reports whether a version in this status is still being edited.
func (s Status) Working() bool {
	return s == Draft || s == Modified
}

// Terminal reports whether no transition leaves this status.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && next.Cardinality() == 0
}

func (s Status) CanTransition(to Status) bool {
	next, ok := transitions[s]
	return ok && next.Contains(to)
}

func transition(from, to Status) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
