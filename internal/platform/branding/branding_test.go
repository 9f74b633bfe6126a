package branding

import "testing"

func TestAppName(t *testing.T) {
	if AppName == "" {
		t.Fatal("expected AppName to be non-empty")
	}
	if AppName != "Loja Maçônica Luz e Progresso" {
		t.Fatalf("AppName = %q, want %q", AppName, "Loja Maçônica Luz e Progresso")
	}
}

func TestShortName(t *testing.T) {
	if ShortName == "" {
		t.Fatal("expected ShortName to be non-empty")
	}
}
