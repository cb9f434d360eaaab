package movecache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	s, err := Open(context.Background(), "redis://"+mr.Addr()+"/0", time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestPutGet(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	key := Key("gpt-3.5-turbo", 10, 0, "sys", "usr")

	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if err := s.Put(ctx, key, "6 4 4 4"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	move, ok, err := s.Get(ctx, key)
	if err != nil || !ok || move != "6 4 4 4" {
		t.Fatalf("Get = %q %v %v", move, ok, err)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}
}

func TestPutSkipsEmpty(t *testing.T) {
	s, mr := newTestStore(t)
	key := Key("m", 10, 0, "a", "b")
	if err := s.Put(context.Background(), key, "  "); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if mr.Exists(key) {
		t.Fatalf("empty answer should not be cached")
	}
}

func TestKeyDistinguishesInputs(t *testing.T) {
	base := Key("m", 10, 0, "sys", "usr")
	if base != Key("m", 10, 0, "sys", "usr") {
		t.Fatalf("key not deterministic")
	}
	others := []string{
		Key("m2", 10, 0, "sys", "usr"),
		Key("m", 11, 0, "sys", "usr"),
		Key("m", 10, 0.5, "sys", "usr"),
		Key("m", 10, 0, "sy", "susr"),
		Key("m", 10, 0, "sys", "usr "),
	}
	for i, k := range others {
		if k == base {
			t.Fatalf("case %d collides with base key", i)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, "", time.Hour); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := Open(ctx, "http://localhost:6379", time.Hour); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()
	if _, err := Open(ctx, "redis://"+addr, time.Hour); err == nil {
		t.Fatalf("expected ping error for closed server")
	}
}

func TestParseRedisURL(t *testing.T) {
	opts, err := parseRedisURL("rediss://:secret@cache.local:6380/3")
	if err != nil {
		t.Fatalf("parseRedisURL: %v", err)
	}
	if opts.Addr != "cache.local:6380" || opts.Password != "secret" || opts.DB != 3 || opts.TLSConfig == nil {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
