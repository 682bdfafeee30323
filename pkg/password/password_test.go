package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("secret123", hash) {
		t.Error("Verify() rejected the correct password")
	}
	if Verify("wrong", hash) {
		t.Error("Verify() accepted a wrong password")
	}
	if Verify("secret123", "not-a-bcrypt-hash") {
		t.Error("Verify() accepted a malformed hash")
	}
}

func TestHash_Salted(t *testing.T) {
	h1, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	h2, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password must differ")
	}
}
