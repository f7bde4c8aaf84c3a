package utils

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	return enc(header) + "." + enc(claims) + ".c2ln"
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := unsignedToken(t, map[string]any{"exp": exp, "user_id": 7})

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("TokenExpiry returned error: %v", err)
	}
	if got.Unix() != exp {
		t.Errorf("expiry = %v, want %v", got.Unix(), exp)
	}
}

func TestTokenExpired(t *testing.T) {
	future := unsignedToken(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})
	if TokenExpired(future) {
		t.Errorf("future token reported expired")
	}
	past := unsignedToken(t, map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})
	if !TokenExpired(past) {
		t.Errorf("past token reported valid")
	}
	if !TokenExpired("garbage") {
		t.Errorf("unparseable token reported valid")
	}
	noExp := unsignedToken(t, map[string]any{"user_id": 7})
	if !TokenExpired(noExp) {
		t.Errorf("token without exp reported valid")
	}
}
