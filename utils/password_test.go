package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-passw0rd" {
		t.Fatal("password stored in plain text")
	}

	if !CheckPassword(hash, "s3cret-passw0rd") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("not-a-bcrypt-hash", "s3cret-passw0rd") {
		t.Error("invalid hash accepted")
	}
}
