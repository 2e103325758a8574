package auth

import "testing"

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash equals plain password")
	}

	if !VerifyPassword("pw123456", hash) {
		t.Fatal("expected password to verify against its own hash")
	}
	if VerifyPassword("pw1234567", hash) {
		t.Fatal("expected different password to fail verification")
	}

	// argument order matters: plain first, hash second
	if VerifyPassword(hash, "pw123456") {
		t.Fatal("swapped arguments must not verify")
	}
}

func TestHash_Salted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password should differ (salt)")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("pw123456", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash must not verify")
	}
}
