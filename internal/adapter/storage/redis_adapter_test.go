package storage

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisAdapter_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)
	key := "test:blob"
	client.Del(ctx, key)

	blob := []byte(`[{"id":1,"name":"Shirt"}]`)
	if err := adapter.Set(ctx, key, blob); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := adapter.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("expected %s, got %s", blob, got)
	}

	if err := adapter.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRedisAdapter_AbsentKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)
	client.Del(ctx, "test:absent")

	got, err := adapter.Get(ctx, "test:absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent key, got %s", got)
	}
}

func TestRedisAdapter_DeleteAbsentKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)
	client.Del(ctx, "test:absent")

	if err := adapter.Delete(ctx, "test:absent"); err != nil {
		t.Errorf("deleting an absent key should not fail: %v", err)
	}
}
