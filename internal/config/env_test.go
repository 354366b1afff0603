package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	t.Setenv("BOOL_TEST", "1")
	if got := boolEnvOrDefault("BOOL_TEST", false); !got {
		t.Fatalf("expected true for 1")
	}

	t.Setenv("BOOL_TEST", "no")
	if got := boolEnvOrDefault("BOOL_TEST", true); got {
		t.Fatalf("expected false for no")
	}

	t.Setenv("BOOL_TEST", "whatever")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default on unparseable value")
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}

	t.Setenv("INT_TEST", "21")
	if got := intEnvOrDefault("INT_TEST", 7); got != 21 {
		t.Fatalf("expected 21, got %d", got)
	}

	t.Setenv("INT_TEST", "-3")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default on non-positive, got %d", got)
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("STR_TEST", "")
	if got := envOrDefault("STR_TEST", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}

	t.Setenv("STR_TEST", "value")
	if got := envOrDefault("STR_TEST", "fallback"); got != "value" {
		t.Fatalf("expected value, got %s", got)
	}
}
