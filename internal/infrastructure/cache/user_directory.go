// Package cache keeps short-lived copies of joined display data in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"servicios_locales/internal/config"
	"servicios_locales/internal/domain/entities"
	"servicios_locales/internal/usecase/interfaces"
)

const userKeyPrefix = "usuarios:perfil:"

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type cachedProfile struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"nombre"`
	LastName  string  `json:"apellido"`
	PhotoURL  *string `json:"fotoUrl,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
}

// UserDirectory is a read-through cache in front of another IUserDirectory.
// Redis failures are logged and the lookup falls through to next.
type UserDirectory struct {
	next interfaces.IUserDirectory
	rdb  goredis.Cmdable
	ttl  time.Duration
	log  *slog.Logger
}

var _ interfaces.IUserDirectory = (*UserDirectory)(nil)

func NewUserDirectory(next interfaces.IUserDirectory, rdb goredis.Cmdable, ttl time.Duration, logger *slog.Logger) *UserDirectory {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserDirectory{next: next, rdb: rdb, ttl: ttl, log: logger}
}

func userKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

func (d *UserDirectory) GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.UserProfile, error) {
	out := make(map[int64]entities.UserProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKey(id)
	}

	missing := ids
	vals, err := d.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		d.log.WarnContext(ctx, "user cache read failed", slog.Any("err", err))
	} else {
		missing = make([]int64, 0, len(ids))
		for i, v := range vals {
			p, ok := decodeProfile(v)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = p
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := d.next.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	d.store(ctx, loaded)
	for id, p := range loaded {
		out[id] = p
	}
	return out, nil
}

func (d *UserDirectory) store(ctx context.Context, profiles map[int64]entities.UserProfile) {
	if len(profiles) == 0 || d.ttl <= 0 {
		return
	}
	pipe := d.rdb.Pipeline()
	for id, p := range profiles {
		raw, err := json.Marshal(cachedProfile{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, PhotoURL: p.PhotoURL, Phone: p.Phone})
		if err != nil {
			continue
		}
		pipe.Set(ctx, userKey(id), raw, d.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		d.log.WarnContext(ctx, "user cache write failed", slog.Any("err", err))
	}
}

func decodeProfile(v interface{}) (entities.UserProfile, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return entities.UserProfile{}, false
	}
	var c cachedProfile
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return entities.UserProfile{}, false
	}
	return entities.UserProfile{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, PhotoURL: c.PhotoURL, Phone: c.Phone}, true
}
