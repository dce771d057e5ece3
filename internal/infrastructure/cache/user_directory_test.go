package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"servicios_locales/internal/config"
	"servicios_locales/internal/domain/entities"
	mock_interfaces "servicios_locales/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// unreachableRedis returns a client whose every command fails fast.
func unreachableRedis(t *testing.T) *goredis.Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestUserDirectory_FallsThroughWhenRedisIsDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	next := mock_interfaces.NewMockIUserDirectory(ctrl)
	next.EXPECT().GetByIDs(gomock.Any(), []int64{10, 20}).Return(map[int64]entities.UserProfile{
		10: {ID: 10, FirstName: "Ana"},
		20: {ID: 20, FirstName: "Luis"},
	}, nil)

	d := NewUserDirectory(next, unreachableRedis(t), time.Minute, nil)
	got, err := d.GetByIDs(context.Background(), []int64{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[10].FirstName != "Ana" || got[20].FirstName != "Luis" {
		t.Fatalf("unexpected profiles: %+v", got)
	}
}

func TestUserDirectory_PropagatesSourceErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	next := mock_interfaces.NewMockIUserDirectory(ctrl)
	next.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

	d := NewUserDirectory(next, unreachableRedis(t), time.Minute, nil)
	if _, err := d.GetByIDs(context.Background(), []int64{10}); err == nil || err.Error() != "db" {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestUserDirectory_EmptyInput(t *testing.T) {
	d := NewUserDirectory(nil, unreachableRedis(t), time.Minute, nil)
	got, err := d.GetByIDs(context.Background(), nil)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %v %v", got, err)
	}
}

func TestDecodeProfile(t *testing.T) {
	photo := "https://cdn.example.com/u/10.jpg"
	p, ok := decodeProfile(`{"id":10,"nombre":"Ana","apellido":"Gomez","fotoUrl":"` + photo + `"}`)
	if !ok || p.ID != 10 || p.LastName != "Gomez" || p.PhotoURL == nil || *p.PhotoURL != photo || p.Phone != nil {
		t.Fatalf("unexpected decode: %+v %v", p, ok)
	}
	for _, v := range []interface{}{nil, "", "{", 42} {
		if _, ok := decodeProfile(v); ok {
			t.Fatalf("expected miss for %#v", v)
		}
	}
}

func TestNewRedis_RequiresAddr(t *testing.T) {
	if _, err := NewRedis(context.Background(), config.RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
