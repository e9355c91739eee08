package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["u_diffuse"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestUniformCacheKnown(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["u_light_position"] = -1

	if !cache.Known("u_light_position") {
		t.Error("Cached missing uniforms should still be known")
	}

	if cache.Known("u_eye") {
		t.Error("Uncached uniform should not be known")
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["projection"] = 3

	// A cached entry must be served without a GL call.
	if loc := cache.GetLocation("projection"); loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
}
