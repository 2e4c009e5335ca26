package repository

import "testing"

func TestNormalizeWindowValid(t *testing.T) {
	if got := NormalizeWindow(20); got != W20 {
		t.Fatalf("expected W20, got %d", got)
	}
}

func TestNormalizeWindowZeroDefaults(t *testing.T) {
	if got := NormalizeWindow(0); got != W10 {
		t.Fatalf("expected default W10, got %d", got)
	}
}

func TestNormalizeWindowInvalidDefaults(t *testing.T) {
	if got := NormalizeWindow(7); got != W10 {
		t.Fatalf("expected default W10, got %d", got)
	}
}
