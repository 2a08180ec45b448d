package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/cache"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/queue"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()
	tester.RemoveDBFile()

	os.Exit(code)
}

// newService starts a catalog service on a fresh database.
func newService(t *testing.T) (*CatalogService, *cache.Memory, *queue.Memory) {
	t.Helper()
	tester.Setup()

	views, events := tester.Cache(), tester.Queue()
	return NewCatalogService(store.NewGormStore(tester.TestDB()), views, events, DefaultOptions()), views, events
}

func names(values ...string) []v1.LocalizedValue {
	out := make([]v1.LocalizedValue, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, v1.LocalizedValue{Language: values[i], Value: values[i+1]})
	}
	return out
}

func create(t *testing.T, s *CatalogService, kind string, content *v1.Content) *v1.Entity {
	t.Helper()
	res, err := s.CreateEntity(context.TODO(), &v1.CreateEntityRequest{Kind: kind, Content: content})
	require.NoError(t, err)
	return res.Entity
}

func update(t *testing.T, s *CatalogService, kind, id string, content *v1.Content) *v1.Entity {
	t.Helper()
	res, err := s.UpdateEntity(context.TODO(), &v1.UpdateEntityRequest{Kind: kind, ID: id, Content: content})
	require.NoError(t, err)
	return res.Entity
}

func publish(t *testing.T, s *CatalogService, kind, id string, languages ...string) *v1.Entity {
	t.Helper()
	res, err := s.PublishEntity(context.TODO(), &v1.LanguagesRequest{Kind: kind, ID: id, Languages: languages})
	require.NoError(t, err)
	return res.Entity
}

func operations(events *queue.Memory, rootID string) []string {
	var ops []string
	for _, e := range events.Events() {
		if e.RootID == rootID {
			ops = append(ops, e.Operation)
		}
	}
	return ops
}

func withActor(actor string) context.Context {
	return module.WithActor(context.TODO(), actor)
}
