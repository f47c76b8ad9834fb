package treestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps the whole tree in a single hash: field = record path,
// value = JSON record. Collections stay small (dozens to hundreds of
// records), so reading the whole hash per call is acceptable.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects with short timeouts and verifies connectivity.
func NewRedis(addr, key string) (*Redis, error) {
	if key == "" {
		key = "sitecrew:tree"
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{client: client, key: key}, nil
}

func (r *Redis) flat(ctx context.Context) (map[string]Record, error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(raw))
	for p, v := range raw {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		out[p] = rec
	}
	return out, nil
}

func (r *Redis) Get(ctx context.Context, path string) (Node, error) {
	flat, err := r.flat(ctx)
	if err != nil {
		return nil, err
	}
	return assemble(flat, path), nil
}

func (r *Redis) Query(ctx context.Context, path, field, value string) (map[string]Record, error) {
	flat, err := r.flat(ctx)
	if err != nil {
		return nil, err
	}
	return matchChildren(flat, path, field, value), nil
}

func (r *Redis) Push(ctx context.Context, path string, rec Record) (string, error) {
	key := newKey()
	buf, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	if err := r.client.HSet(ctx, r.key, path+"/"+key, buf).Err(); err != nil {
		return "", err
	}
	return key, nil
}

func (r *Redis) Update(ctx context.Context, path string, fields Record) error {
	rec := Record{}
	raw, err := r.client.HGet(ctx, r.key, path).Result()
	switch {
	case err == redis.Nil:
	case err != nil:
		return err
	default:
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	buf, err := json.Marshal(mergeRecord(rec, fields))
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, r.key, path, buf).Err()
}

func (r *Redis) Remove(ctx context.Context, path string) error {
	paths, err := r.client.HKeys(ctx, r.key).Result()
	if err != nil {
		return err
	}
	var doomed []string
	for _, p := range paths {
		if p == path || strings.HasPrefix(p, path+"/") {
			doomed = append(doomed, p)
		}
	}
	if len(doomed) == 0 {
		return nil
	}
	return r.client.HDel(ctx, r.key, doomed...).Err()
}

func (r *Redis) Dump(ctx context.Context) (Node, error) {
	flat, err := r.flat(ctx)
	if err != nil {
		return nil, err
	}
	n := assemble(flat, "")
	if n == nil {
		n = Node{}
	}
	return n, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
