/*
Package redisstore provides an implementation of the store.ModelStore
interface backed by a redis database.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Textualization/ML/store"
	"github.com/Textualization/ML/tree"
	treejson "github.com/Textualization/ML/tree/json"
	"github.com/google/uuid"
	redis "gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
}

/*
New takes a redis client and a key prefix and returns a
store.ModelStore that keeps each tree's JSON encoding under
prefix:model:id on the redis database.
*/
func New(rc *redis.Client, prefix string) store.ModelStore {
	return &redisStore{rc, prefix}
}

func (rs *redisStore) Save(ctx context.Context, id string, t *tree.Tree) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	var buf bytes.Buffer
	if err := treejson.WriteTree(t, &buf); err != nil {
		return "", err
	}
	if err := rs.rc.Set(rs.keyFor(id), buf.Bytes(), 0).Err(); err != nil {
		return "", fmt.Errorf("saving model %s in redis: %v", id, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (rs *redisStore) Load(ctx context.Context, id string) (*tree.Tree, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %s from redis: %v", id, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return treejson.ReadTree(bytes.NewReader(data))
}

func (rs *redisStore) Delete(ctx context.Context, id string) error {
	if err := rs.rc.Del(rs.keyFor(id)).Err(); err != nil {
		return fmt.Errorf("deleting model %s from redis: %v", id, err)
	}
	return ctx.Err()
}

func (rs *redisStore) List(ctx context.Context) ([]string, error) {
	keys, err := rs.rc.Keys(rs.keyFor("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("listing models in redis: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	keyPrefix := rs.keyFor("")
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix))
	}
	return ids, nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:model:%s", rs.prefix, id)
}
