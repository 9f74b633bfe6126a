package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC argon2id prefix, got %q", hash)
	}

	ok, err := Verify("correct horse battery", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ok, err := Verify("wrong horse battery", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch")
	}
}

func TestHashRejectsShortPassword(t *testing.T) {
	if _, err := Hash("short"); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if _, err := Verify("anything at all", "not-a-phc-string"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestVerifyUnsupportedAlgorithm(t *testing.T) {
	if _, err := Verify("anything at all", "$scrypt$v=19$m=65536,t=2,p=1$c2FsdA$a2V5"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}
