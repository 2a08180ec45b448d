package versioning

import (
	"fmt"
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Operation names the change a plan performs. It is stored as the last
// operation type of the versions the plan touches.
type Operation string

const (
	OperationCreate    Operation = "create"
	OperationEdit      Operation = "edit"
	OperationPublish   Operation = "publish"
	OperationWithdraw  Operation = "withdraw"
	OperationDelete    Operation = "delete"
	OperationRestore   Operation = "restore"
	OperationExpire    Operation = "expire"
	OperationScheduled Operation = "scheduled_publish"
)

// NewVersion describes the version a plan adds on top of the head.
type NewVersion struct {
	PreviousID string
	Status     Status
	Languages  map[string]Status
	Major      int
	Minor      int
	// CopyOf is the version whose content the new version starts from.
	CopyOf string
}

type StatusChange struct {
	VersionID string
	From      Status
	To        Status
}

type LanguageChange struct {
	VersionID string
	Language  string
	From      Status
	To        Status
}

type Renumber struct {
	VersionID string
	Major     int
	Minor     int
}

// Plan lists the row changes of one operation. Plans are computed from the
// aggregate alone and applied by the store.
type Plan struct {
	Operation  Operation
	NewVersion *NewVersion
	Statuses   []StatusChange
	Languages  []LanguageChange
	Renumber   *Renumber
}

// Empty reports whether applying the plan changes nothing.
func (p *Plan) Empty() bool {
	return p.NewVersion == nil && len(p.Statuses) == 0 && len(p.Languages) == 0 && p.Renumber == nil
}

// Touched returns the ids of existing versions the plan modifies.
func (p *Plan) Touched() []string {
	ids := mapset.NewSet[string]()
	for _, c := range p.Statuses {
		ids.Add(c.VersionID)
	}
	for _, c := range p.Languages {
		ids.Add(c.VersionID)
	}
	if p.Renumber != nil {
		ids.Add(p.Renumber.VersionID)
	}
	out := ids.ToSlice()
	slices.Sort(out)
	return out
}

func (p *Plan) setStatus(v *Version[any], to Status) error {
	if err := transition(v.Status, to); err != nil {
		return fmt.Errorf("version %s: %w", v.ID, err)
	}
	p.Statuses = append(p.Statuses, StatusChange{VersionID: v.ID, From: v.Status, To: to})
	return nil
}

func (p *Plan) setLanguage(v *Version[any], lang string, to Status) error {
	from := v.Languages[lang]
	if from == to {
		return nil
	}
	if err := transition(from, to); err != nil {
		return fmt.Errorf("version %s language %s: %w", v.ID, lang, err)
	}
	p.Languages = append(p.Languages, LanguageChange{VersionID: v.ID, Language: lang, From: from, To: to})
	return nil
}

// setAll moves the version and all its languages that can follow to status to.
func (p *Plan) setAll(v *Version[any], to Status) error {
	if err := p.setStatus(v, to); err != nil {
		return err
	}
	for _, lang := range v.LanguageCodes() {
		if v.Languages[lang].CanTransition(to) {
			if err := p.setLanguage(v, lang, to); err != nil {
				return err
			}
		}
	}
	return nil
}

// view strips the payload type so plans are computed by one implementation.
func view[T any](v *Version[T]) *Version[any] {
	return &Version[any]{
		ID:           v.ID,
		RootID:       v.RootID,
		VersioningID: v.VersioningID,
		PreviousID:   v.PreviousID,
		Status:       v.Status,
		Languages:    v.Languages,
		Major:        v.Major,
		Minor:        v.Minor,
		ValidFrom:    v.ValidFrom,
		ValidTo:      v.ValidTo,
		Created:      v.Created,
	}
}

// PlanEdit plans a new working version holding content in languages. The new
// version is a draft while nothing has been published and a modified version
// otherwise; an older working version is archived.
func (a *Aggregate[T]) PlanEdit(languages []string) (*Plan, error) {
	if len(languages) == 0 {
		return nil, ErrNoLanguage
	}

	plan := &Plan{Operation: OperationEdit}
	head, ok := a.Head()
	if !ok {
		plan.Operation = OperationCreate
		plan.NewVersion = &NewVersion{Status: Draft, Languages: draftLanguages(languages, nil), Minor: 1}
		return plan, nil
	}
	if head.Status == Deleted {
		return nil, ErrDeleted
	}

	status := Draft
	var published map[string]Status
	if p, ok := a.Published(); ok {
		status = Modified
		published = p.Languages
	}

	if head.Status.Working() {
		if err := plan.setAll(view(head), Archived); err != nil {
			return nil, err
		}
	}

	plan.NewVersion = &NewVersion{
		PreviousID: head.VersioningID,
		Status:     status,
		Languages:  draftLanguages(languages, published),
		Major:      head.Major,
		Minor:      head.Minor + 1,
		CopyOf:     head.ID,
	}
	return plan, nil
}

func draftLanguages(languages []string, published map[string]Status) map[string]Status {
	out := make(map[string]Status, len(languages))
	for _, lang := range languages {
		if published[lang] == Published {
			out[lang] = Modified
		} else {
			out[lang] = Draft
		}
	}
	return out
}

// PlanPublish publishes the working version in languages. An empty languages
// list publishes every available language. Only languages with content, as
// listed in available, can be published. The previously published version is
// archived.
func (a *Aggregate[T]) PlanPublish(languages []string, available []string) (*Plan, error) {
	head, ok := a.Head()
	if !ok {
		return nil, ErrNoVersion
	}
	if head.Status == Deleted {
		return nil, ErrDeleted
	}
	if !head.Status.Working() {
		return nil, fmt.Errorf("%w: latest version is %s", ErrNothingToPublish, head.Status)
	}

	content := mapset.NewSet(available...)
	if len(languages) == 0 {
		languages = available
	}
	if len(languages) == 0 {
		return nil, ErrNoLanguage
	}

	plan := &Plan{Operation: OperationPublish}
	if prev, ok := a.Published(); ok {
		if err := plan.setAll(view(prev), Archived); err != nil {
			return nil, err
		}
	}

	v := view(head)
	if err := plan.setStatus(v, Published); err != nil {
		return nil, err
	}
	for _, lang := range languages {
		if !content.Contains(lang) {
			return nil, fmt.Errorf("%w: %s", ErrLanguageUnavailable, lang)
		}
		if _, ok := v.Languages[lang]; !ok {
			plan.Languages = append(plan.Languages, LanguageChange{VersionID: v.ID, Language: lang, To: Published})
			continue
		}
		if err := plan.setLanguage(v, lang, Published); err != nil {
			return nil, err
		}
	}
	plan.Renumber = &Renumber{VersionID: head.ID, Major: head.Major + 1}
	return plan, nil
}

// PlanWithdraw takes languages of the published version back out of
// publication. When no published language remains the version itself is
// withdrawn: it becomes modified, or archived when a newer working version
// exists. An empty languages list withdraws every language.
func (a *Aggregate[T]) PlanWithdraw(languages []string) (*Plan, error) {
	published, ok := a.Published()
	if !ok {
		return nil, ErrNotPublished
	}

	v := view(published)
	current := mapset.NewSet(v.LanguagesIn(Published)...)
	withdraw := mapset.NewSet(languages...)
	if len(languages) == 0 {
		withdraw = current.Clone()
	}
	if diff := withdraw.Difference(current); diff.Cardinality() > 0 {
		missing := diff.ToSlice()
		SortLanguages(missing)
		return nil, fmt.Errorf("%w: %v not published", ErrLanguageUnavailable, missing)
	}

	plan := &Plan{Operation: OperationWithdraw}
	if current.Difference(withdraw).Cardinality() > 0 {
		langs := withdraw.ToSlice()
		SortLanguages(langs)
		for _, lang := range langs {
			if err := plan.setLanguage(v, lang, Modified); err != nil {
				return nil, err
			}
		}
		return plan, nil
	}

	to := Modified
	if _, ok := a.Working(); ok {
		to = Archived
	}
	if err := plan.setAll(v, to); err != nil {
		return nil, err
	}
	return plan, nil
}

// PlanDelete marks every live version deleted.
func (a *Aggregate[T]) PlanDelete() (*Plan, error) {
	head, ok := a.Head()
	if !ok {
		return nil, ErrNoVersion
	}
	if head.Status == Deleted {
		return nil, ErrDeleted
	}

	plan := &Plan{Operation: OperationDelete}
	for _, version := range a.Chain() {
		if version.Status.Terminal() {
			continue
		}
		if err := plan.setAll(view(version), Deleted); err != nil {
			return nil, err
		}
	}
	if len(plan.Statuses) == 0 {
		// every version is archived: the head is marked deleted by a new version
		plan.NewVersion = &NewVersion{
			PreviousID: head.VersioningID,
			Status:     Deleted,
			Languages:  allLanguages(head.Languages, Deleted),
			Major:      head.Major,
			Minor:      head.Minor + 1,
			CopyOf:     head.ID,
		}
	}
	return plan, nil
}

// PlanRestore brings a deleted aggregate back as a new draft copied from the
// deleted head.
func (a *Aggregate[T]) PlanRestore() (*Plan, error) {
	head, ok := a.Head()
	if !ok {
		return nil, ErrNoVersion
	}
	if head.Status != Deleted {
		return nil, ErrNotDeleted
	}

	return &Plan{
		Operation: OperationRestore,
		NewVersion: &NewVersion{
			PreviousID: head.VersioningID,
			Status:     Draft,
			Languages:  allLanguages(head.Languages, Draft),
			Major:      head.Major,
			Minor:      head.Minor + 1,
			CopyOf:     head.ID,
		},
	}, nil
}

func allLanguages(languages map[string]Status, status Status) map[string]Status {
	out := make(map[string]Status, len(languages))
	for lang := range languages {
		out[lang] = status
	}
	return out
}

// PlanExpire archives the published version once its validity has ended.
func (a *Aggregate[T]) PlanExpire(now time.Time) (*Plan, error) {
	plan := &Plan{Operation: OperationExpire}
	published, ok := a.Published()
	if !ok || published.ValidTo == nil || published.ValidTo.After(now) {
		return plan, nil
	}
	if err := plan.setAll(view(published), Archived); err != nil {
		return nil, err
	}
	return plan, nil
}

// PlanScheduled publishes a working version whose validity has started and
// not yet ended, in every language it has.
func (a *Aggregate[T]) PlanScheduled(now time.Time) (*Plan, error) {
	working, ok := a.Working()
	if !ok || working.ValidFrom == nil || working.ValidFrom.After(now) {
		return &Plan{Operation: OperationScheduled}, nil
	}
	if working.ValidTo != nil && !working.ValidTo.After(now) {
		return &Plan{Operation: OperationScheduled}, nil
	}

	langs := working.LanguageCodes()
	plan, err := a.PlanPublish(langs, langs)
	if err != nil {
		return nil, err
	}
	plan.Operation = OperationScheduled
	return plan, nil
}
