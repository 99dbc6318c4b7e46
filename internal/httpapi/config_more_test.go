package httpapi

import (
	"testing"
	"time"
)

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 64<<10 {
		t.Fatalf("expected default 64KiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestSetCommandTimeout_NormalizesNegativeToZero(t *testing.T) {
	defer SetCommandTimeout(0)
	SetCommandTimeout(-time.Second)
	if commandTimeout != 0 {
		t.Fatalf("expected 0, got %v", commandTimeout)
	}
	SetCommandTimeout(3 * time.Second)
	if commandTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", commandTimeout)
	}
}
