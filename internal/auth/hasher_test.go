package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerify_Success(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher()
	encoded, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}
	if !h.Verify(encoded, "password123") {
		t.Fatalf("expected password to verify")
	}
}

func TestHash_SaltFreshness(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher()
	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !h.Verify(first, "same-password") || !h.Verify(second, "same-password") {
		t.Fatalf("both hashes must verify against the password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher()
	encoded, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Verify(encoded, "wrong-password") {
		t.Fatalf("wrong password must not verify")
	}
}

func TestVerify_MalformedHashFailsClosed(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher()
	for _, encoded := range []string{
		"",
		"plaintext-garbage",
		"$argon2id$v=19$m=65536,t=1,p=4$%%%badsalt$AAAA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!notb64",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$c2FsdA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$c2FsdA",
		"$argon2id$v=19$m=what$c2FsdA$c2FsdA",
	} {
		if h.Verify(encoded, "anything") {
			t.Fatalf("malformed hash %q must not verify", encoded)
		}
	}
}
