package versioning

import (
	"fmt"
	"slices"
	"time"
)

// Version is one revision of an aggregate together with the publishing status
// of each of its languages.
type Version[T any] struct {
	ID           string
	RootID       string
	VersioningID string
	PreviousID   string
	Status       Status
	Languages    map[string]Status
	Major        int
	Minor        int
	ValidFrom    *time.Time
	ValidTo      *time.Time
	Created      time.Time
	Payload      T
}

// LanguagesIn returns the languages of the version having the given status,
// in catalog order.
func (v *Version[T]) LanguagesIn(status Status) []string {
	var langs []string
	for lang, s := range v.Languages {
		if s == status {
			langs = append(langs, lang)
		}
	}
	SortLanguages(langs)
	return langs
}

// LanguageCodes returns every language of the version in catalog order.
func (v *Version[T]) LanguageCodes() []string {
	langs := make([]string, 0, len(v.Languages))
	for lang := range v.Languages {
		langs = append(langs, lang)
	}
	SortLanguages(langs)
	return langs
}

func (v *Version[T]) Number() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Aggregate is the root of a versioned entity with its linear version history.
// Versions are stored flat and addressed through id indexes.
type Aggregate[T any] struct {
	RootID   string
	versions []Version[T]
	byRef    map[string]int
	byID     map[string]int
	next     map[string]int
	head     int
}

// NewAggregate validates the version history of one root. The history must
// form a single chain through PreviousID without cycles or forks.
func NewAggregate[T any](rootID string, versions []Version[T]) (*Aggregate[T], error) {
	a := &Aggregate[T]{
		RootID:   rootID,
		versions: make([]Version[T], len(versions)),
		byRef:    make(map[string]int, len(versions)),
		byID:     make(map[string]int, len(versions)),
		next:     make(map[string]int, len(versions)),
		head:     -1,
	}
	copy(a.versions, versions)

	for i, v := range a.versions {
		if v.RootID != rootID {
			return nil, fmt.Errorf("%w: version %s of root %s", ErrForeignVersion, v.ID, v.RootID)
		}
		if _, ok := a.byRef[v.VersioningID]; ok {
			return nil, fmt.Errorf("%w: versioning %s", ErrDuplicateVersion, v.VersioningID)
		}
		if _, ok := a.byID[v.ID]; ok {
			return nil, fmt.Errorf("%w: version %s", ErrDuplicateVersion, v.ID)
		}
		a.byRef[v.VersioningID] = i
		a.byID[v.ID] = i
	}

	prev := make(map[string]string, len(a.versions))
	firsts := 0
	for i, v := range a.versions {
		if v.PreviousID == "" {
			firsts++
			continue
		}
		if _, ok := a.byRef[v.PreviousID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrDanglingPrevious, v.PreviousID)
		}
		if other, ok := a.next[v.PreviousID]; ok {
			return nil, fmt.Errorf("%w: %s and %s both follow %s", ErrForkedHistory,
				a.versions[other].VersioningID, v.VersioningID, v.PreviousID)
		}
		a.next[v.PreviousID] = i
		prev[v.VersioningID] = v.PreviousID
	}

	if cycle := DetectCycle(prev); len(cycle) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrCycle, cycle)
	}
	if len(a.versions) > 0 && firsts != 1 {
		return nil, fmt.Errorf("%w: %d independent histories", ErrForkedHistory, firsts)
	}

	for i, v := range a.versions {
		if _, ok := a.next[v.VersioningID]; !ok {
			a.head = i
			break
		}
	}

	return a, nil
}

func (a *Aggregate[T]) Len() int {
	return len(a.versions)
}

// Head returns the latest version.
func (a *Aggregate[T]) Head() (*Version[T], bool) {
	if a.head < 0 {
		return nil, false
	}
	return &a.versions[a.head], true
}

// Published returns the published version, if any.
func (a *Aggregate[T]) Published() (*Version[T], bool) {
	for i := range a.versions {
		if a.versions[i].Status == Published {
			return &a.versions[i], true
		}
	}
	return nil, false
}

// Working returns the version currently being edited, if any.
func (a *Aggregate[T]) Working() (*Version[T], bool) {
	head, ok := a.Head()
	if !ok || !head.Status.Working() {
		return nil, false
	}
	return head, true
}

// Find looks a version up by versioned id or by versioning id.
func (a *Aggregate[T]) Find(id string) (*Version[T], bool) {
	if i, ok := a.byID[id]; ok {
		return &a.versions[i], true
	}
	if i, ok := a.byRef[id]; ok {
		return &a.versions[i], true
	}
	return nil, false
}

// Chain returns the history from the head back to the first version.
func (a *Aggregate[T]) Chain() []*Version[T] {
	chain := make([]*Version[T], 0, len(a.versions))
	for i := a.head; i >= 0; {
		v := &a.versions[i]
		chain = append(chain, v)
		if v.PreviousID == "" {
			break
		}
		i = a.byRef[v.PreviousID]
	}
	return chain
}

// Deleted reports whether the aggregate has been removed from use.
func (a *Aggregate[T]) Deleted() bool {
	head, ok := a.Head()
	return ok && head.Status == Deleted
}

// Validate checks the status invariants of the history: at most one published
// version, at most one working version which must be the head, and at least
// one published language in a published version.
func (a *Aggregate[T]) Validate() error {
	published, working := 0, 0
	for i := range a.versions {
		v := &a.versions[i]
		switch {
		case v.Status == Published:
			published++
			if len(v.LanguagesIn(Published)) == 0 {
				return fmt.Errorf("%w: published version %s has no published language", ErrInvariant, v.ID)
			}
		case v.Status.Working():
			working++
			if i != a.head {
				return fmt.Errorf("%w: working version %s is not the latest", ErrInvariant, v.ID)
			}
		}
	}
	if published > 1 {
		return fmt.Errorf("%w: %d published versions", ErrInvariant, published)
	}
	if working > 1 {
		return fmt.Errorf("%w: %d working versions", ErrInvariant, working)
	}
	return nil
}

// DetectCycle walks the previous-version links and returns the ids of the
// first cycle found, or nil.
func DetectCycle(prev map[string]string) []string {
	const (
		unseen = iota
		walking
		done
	)

	keys := make([]string, 0, len(prev))
	for k := range prev {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	state := make(map[string]int, len(prev))
	for _, start := range keys {
		if state[start] != unseen {
			continue
		}

		var path []string
		id := start
		for {
			if state[id] == done {
				break
			}
			if state[id] == walking {
				at := slices.Index(path, id)
				return append([]string(nil), path[at:]...)
			}
			state[id] = walking
			path = append(path, id)

			next, ok := prev[id]
			if !ok || next == "" {
				break
			}
			id = next
		}

		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}
