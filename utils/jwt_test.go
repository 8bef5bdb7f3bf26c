package utils

import "testing"

var testSecret = []byte("test-secret")

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testSecret, "jane")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Username != "jane" {
		t.Errorf("username claim = %q, want %q", claims.Username, "jane")
	}
	if claims.ExpiresAt == nil {
		t.Error("token must carry an expiry")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testSecret, "jane")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT([]byte("other-secret"), token); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}

func TestJWTGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ValidateJWT(testSecret, token); err == nil {
			t.Errorf("ValidateJWT(%q) should fail", token)
		}
	}
}
