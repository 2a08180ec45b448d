package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

// Integrity check names reported in problems.
const (
	CheckOrphanedVersion   = "orphaned_version"
	CheckUnknownLanguage   = "unknown_language"
	CheckMultiplePublished = "multiple_published"
	CheckVersionCycle      = "version_cycle"
)

const operationIntegrity = versioning.Operation("integrity")

// CheckIntegrity looks for stored rows the database constraints cannot rule
// out: versions without a root, availabilities of unknown languages, roots
// with several published versions and cycles in the version chain.
func (s *CatalogService) CheckIntegrity(ctx context.Context, _ *v1.CheckIntegrityRequest) (*v1.CheckIntegrityResponse, error) {
	problems := make([]*v1.Problem, 0)

	for _, kind := range model.Kinds {
		orphans, err := s.store.ListOrphanedVersions(ctx, kind)
		if err != nil {
			return nil, s.fail(string(kind), operationIntegrity, err)
		}
		for _, id := range orphans {
			problems = append(problems, &v1.Problem{Kind: string(kind), Check: CheckOrphanedVersion, ID: id})
		}

		unknown, err := s.store.ListUnknownLanguageStatuses(ctx, kind)
		if err != nil {
			return nil, s.fail(string(kind), operationIntegrity, err)
		}
		for _, a := range unknown {
			problems = append(problems, &v1.Problem{Kind: string(kind), Check: CheckUnknownLanguage, ID: a.ParentID, Detail: a.LanguageID})
		}

		published, err := s.store.ListMultiplyPublished(ctx, kind)
		if err != nil {
			return nil, s.fail(string(kind), operationIntegrity, err)
		}
		for _, id := range published {
			problems = append(problems, &v1.Problem{Kind: string(kind), Check: CheckMultiplePublished, ID: id})
		}
	}

	links, err := s.store.ListVersioningLinks(ctx)
	if err != nil {
		return nil, s.fail("", operationIntegrity, err)
	}
	if cycle := versioning.DetectCycle(links); cycle != nil {
		problems = append(problems, &v1.Problem{Check: CheckVersionCycle, ID: cycle[0], Detail: strings.Join(cycle, " -> ")})
	}

	if len(problems) > 0 {
		logrus.Warnf("integrity check found %d problems", len(problems))
	}
	return &v1.CheckIntegrityResponse{Problems: problems}, nil
}
