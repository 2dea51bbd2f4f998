package password_test

import (
	"testing"

	"github.com/tnorman/wayfarer/internal/app/system/password"
	"github.com/tnorman/wayfarer/internal/domain/models"
)

func TestSet_HashNeverEqualsPlaintext(t *testing.T) {
	var cred models.Credential
	password.Set(&cred, "hunter2")

	if cred.Salt == "" {
		t.Fatal("expected salt to be set")
	}
	if cred.Hashed == "" {
		t.Fatal("expected hash to be set")
	}
	if cred.Hashed == "hunter2" {
		t.Error("hash must never equal the plaintext")
	}
}

func TestSet_RederivingReproducesHash(t *testing.T) {
	var cred models.Credential
	password.Set(&cred, "pw")

	if got := password.Encrypt("pw", cred.Salt); got != cred.Hashed {
		t.Errorf("re-derived hash %q != stored hash %q", got, cred.Hashed)
	}
}

func TestSet_OverwritesPriorCredential(t *testing.T) {
	var cred models.Credential
	password.Set(&cred, "first")
	oldSalt, oldHash := cred.Salt, cred.Hashed

	password.Set(&cred, "second")
	if cred.Salt == oldSalt {
		t.Error("expected a fresh salt on re-set")
	}
	if cred.Hashed == oldHash {
		t.Error("expected a fresh hash on re-set")
	}
	if !password.Verify(cred, "second") {
		t.Error("new password should verify")
	}
	if password.Verify(cred, "first") {
		t.Error("old password should no longer verify")
	}
}

func TestVerify(t *testing.T) {
	var cred models.Credential
	password.Set(&cred, "pw")

	if !password.Verify(cred, "pw") {
		t.Error("correct password should verify")
	}
	if password.Verify(cred, "wrong") {
		t.Error("wrong password should not verify")
	}
	if password.Verify(cred, "") {
		t.Error("empty password should not verify")
	}
}

func TestMakeSalt_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := password.MakeSalt()
		if s == "" {
			t.Fatal("empty salt")
		}
		if seen[s] {
			t.Fatalf("salt %q repeated", s)
		}
		seen[s] = true
	}
}
