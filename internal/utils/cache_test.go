package utils

import (
	"testing"
	"time"
)

func TestCacheSetGetExpire(t *testing.T) {
	cache := GetCache()
	cache.Purge()

	cache.Set("k", "v", time.Minute)
	if got := cache.Get("k"); got != "v" {
		t.Errorf("Get = %v, want v", got)
	}

	// 过期后读到 nil
	cache.Set("short", 1, -time.Second)
	if got := cache.Get("short"); got != nil {
		t.Errorf("Expected expired entry to return nil, got %v", got)
	}

	cache.Delete("k")
	if got := cache.Get("k"); got != nil {
		t.Errorf("Expected deleted entry to return nil, got %v", got)
	}
}
