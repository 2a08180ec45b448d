package cache

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/compress"
)

func indexKey(kind, rootID string) string {
	return "catalog:index:" + kind + ":" + rootID
}

var _ ViewCache = (*Redis)(nil)

// Redis keeps views compressed. Every aggregate has an index set listing its
// cached keys so all of them can be dropped at once.
type Redis struct {
	client  *redis.Client
	encoder compress.Compress
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedis(opts RedisOptions, encoder compress.Compress) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		Protocol: 2,
	})

	return &Redis{client: client, encoder: encoder}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) GetView(ctx context.Context, key Key) ([]byte, error) {
	res := r.client.Get(ctx, key.String())
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, ErrMiss
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	return r.encoder.Decode(buf)
}

func (r *Redis) SetView(ctx context.Context, key Key, data []byte, ttl time.Duration) error {
	encoded, err := r.encoder.Encode(data)
	if err != nil {
		return err
	}

	index := indexKey(key.Kind, key.RootID)
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.Set(ctx, key.String(), encoded, ttl).Err(); err != nil {
			return err
		}

		if err := p.SAdd(ctx, index, key.String()).Err(); err != nil {
			return err
		}

		// refreshed with every key it lists
		return p.Expire(ctx, index, ttl).Err()
	})

	return err
}

func (r *Redis) Invalidate(ctx context.Context, kind, rootID string) error {
	index := indexKey(kind, rootID)
	members := r.client.SMembers(ctx, index)
	if members.Err() != nil {
		return members.Err()
	}

	keys := append(members.Val(), index)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return err
	}

	logrus.Debugf("invalidated %d cached views of %s %s", len(keys)-1, kind, rootID)
	return nil
}
