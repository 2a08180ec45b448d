package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCatalogService_Locks(t *testing.T) {
	s, _, _ := newService(t)
	alice := module.WithActor(context.TODO(), "alice")
	bob := module.WithActor(context.TODO(), "bob")

	e := create(t, s, "service", &v1.Content{Names: names("fi", "Palvelu")})
	ref := &v1.EntityRef{Kind: "service", ID: e.ID}

	lock, err := s.LockEntity(alice, ref)
	require.NoError(t, err)
	assert.Equal(t, "alice", lock.Lock.LockedBy)
	assert.Equal(t, "services", lock.Lock.Table)
	assert.Equal(t, lock.Lock.LockedAt.Add(s.opts.LockTTL), lock.Lock.ExpiresAt)

	edit := &v1.UpdateEntityRequest{Kind: "service", ID: e.ID, Content: &v1.Content{Names: names("fi", "Muokattu")}}
	_, err = s.UpdateEntity(bob, edit)
	assert.Equal(t, codes.Aborted, status.Code(err))
	_, err = s.LockEntity(bob, ref)
	assert.Equal(t, codes.Aborted, status.Code(err))
	_, err = s.EraseEntity(bob, ref)
	assert.Equal(t, codes.Aborted, status.Code(err))
	_, err = s.UnlockEntity(bob, ref)
	assert.Equal(t, codes.Aborted, status.Code(err))

	_, err = s.UpdateEntity(alice, edit)
	require.NoError(t, err)

	// locking again refreshes the lock
	_, err = s.LockEntity(alice, ref)
	require.NoError(t, err)

	_, err = s.UnlockEntity(alice, ref)
	require.NoError(t, err)
	_, err = s.UpdateEntity(bob, edit)
	require.NoError(t, err)

	_, err = s.UnlockEntity(alice, ref)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCatalogService_LockExpires(t *testing.T) {
	s, _, _ := newService(t)
	alice := module.WithActor(context.TODO(), "alice")
	bob := module.WithActor(context.TODO(), "bob")

	e := create(t, s, "organization", &v1.Content{Names: names("fi", "Virasto")})
	ref := &v1.EntityRef{Kind: "organization", ID: e.ID}

	_, err := s.LockEntity(alice, ref)
	require.NoError(t, err)

	later := time.Now().Add(s.opts.LockTTL + time.Minute)
	s.now = func() time.Time { return later }

	_, err = s.UpdateEntity(bob, &v1.UpdateEntityRequest{Kind: "organization", ID: e.ID, Content: &v1.Content{Names: names("fi", "Uusi")}})
	require.NoError(t, err)

	lock, err := s.LockEntity(bob, ref)
	require.NoError(t, err)
	assert.Equal(t, "bob", lock.Lock.LockedBy)
}

func TestCatalogService_LockMissingEntity(t *testing.T) {
	s, _, _ := newService(t)

	_, err := s.LockEntity(context.TODO(), &v1.EntityRef{Kind: "service", ID: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = s.LockEntity(context.TODO(), &v1.EntityRef{Kind: "invoice", ID: uuid.NewString()})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
