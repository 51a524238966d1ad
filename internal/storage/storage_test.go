package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("my photo (1).png", "avatars")

	if !strings.HasPrefix(key, "avatars/") {
		t.Errorf("expected avatars/ prefix, got %s", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("expected .png extension retained, got %s", key)
	}
	if strings.ContainsAny(strings.TrimSuffix(strings.TrimPrefix(key, "avatars/"), ".png"), " ()") {
		t.Errorf("expected non-alphanumeric characters stripped, got %s", key)
	}

	if key == ObjectKey("my photo (1).png", "avatars") {
		t.Error("expected keys to be unique per call")
	}
}

func TestObjectKeyWithoutExtension(t *testing.T) {
	key := ObjectKey("avatar", "avatars")
	if !strings.Contains(key, "-avatar") {
		t.Errorf("expected sanitized base name in key, got %s", key)
	}
}

func TestPublicURL(t *testing.T) {
	if got := PublicURL("https://cdn.example.com", "avatars/x.png"); got != "https://cdn.example.com/avatars/x.png" {
		t.Errorf("unexpected URL %s", got)
	}
	if got := PublicURL("", "avatars/x.png"); got != "avatars/x.png" {
		t.Errorf("expected bare key when no base configured, got %s", got)
	}
}
