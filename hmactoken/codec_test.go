package hmactoken_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dualtoken/goCSRF/claims"
	"github.com/dualtoken/goCSRF/hmactoken"
)

var secret = []byte("secret123-secret123-secret123-00")

func mustCodec(t *testing.T, key []byte) *hmactoken.Codec {
	t.Helper()
	c, err := hmactoken.New(key)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRequiresSecret(t *testing.T) {
	t.Parallel()
	if _, err := hmactoken.New(nil); !errors.Is(err, hmactoken.ErrMissingSecret) {
		t.Errorf("New(nil) error = %v, want %v", err, hmactoken.ErrMissingSecret)
	}
}

func TestSignAndParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		id    string
		purp  claims.Purpose
		extra map[string]any
	}{
		{name: "header slot", id: "abc_123", purp: claims.PurposeHeader},
		{name: "cookie slot", id: "6f1c-aa", purp: claims.PurposeCookie},
		{name: "with extra", id: "x", purp: claims.PurposeHeader, extra: map[string]any{"sub": "42"}},
		{name: "empty id", id: "", purp: claims.PurposeCookie},
	}

	c := mustCodec(t, secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok, err := c.Sign(claims.New(tt.id, tt.purp, time.Now(), time.Hour, tt.extra))
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}
			if parts := strings.Split(tok, "."); len(parts) != 2 {
				t.Fatalf("Sign() invalid token format, got %v parts, want 2", len(parts))
			}

			got, err := c.Parse(tok)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.UUID != tt.id || got.Purpose != tt.purp {
				t.Errorf("Parse() got = %+v", got)
			}
			for k, v := range tt.extra {
				if got.Extra[k] != v {
					t.Errorf("Parse() extra[%q] = %v, want %v", k, got.Extra[k], v)
				}
			}
		})
	}
}

func TestParseInvalidCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		token     string
		wantError error
	}{
		{name: "no separator", token: "invalid", wantError: hmactoken.ErrMalformed},
		{name: "three parts", token: "a.b.c", wantError: hmactoken.ErrMalformed},
		{name: "empty tag", token: "eyJ1dWlkIjoieCJ9.", wantError: hmactoken.ErrMalformed},
		{name: "invalid base64 payload", token: "!@#$.sig", wantError: hmactoken.ErrMalformed},
		{name: "forged tag", token: "eyJ1dWlkIjoieCIsInB1cnBvc2UiOiJoZWFkZXIifQ.AAAA", wantError: hmactoken.ErrSignatureInvalid},
	}

	c := mustCodec(t, secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := c.Parse(tt.token)
			if !errors.Is(err, tt.wantError) {
				t.Errorf("Parse() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestParseExpired(t *testing.T) {
	t.Parallel()
	c := mustCodec(t, secret)
	tok, err := c.Sign(claims.New("id", claims.PurposeHeader, time.Now(), 0, nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if _, err := c.Parse(tok); !errors.Is(err, claims.ErrExpired) {
		t.Errorf("Parse() error = %v, want %v", err, claims.ErrExpired)
	}
}

func TestSignatureVerification(t *testing.T) {
	t.Parallel()
	c := mustCodec(t, secret)
	tok, err := c.Sign(claims.New("id", claims.PurposeHeader, time.Now(), time.Hour, nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	other := mustCodec(t, []byte("wrongsecret"))
	if _, err := other.Parse(tok); !errors.Is(err, hmactoken.ErrSignatureInvalid) {
		t.Errorf("Parse() with wrong secret error = %v, want %v", err, hmactoken.ErrSignatureInvalid)
	}

	parts := strings.Split(tok, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"uuid":"id","purpose":"cookie","iat":0,"exp":99999999999999}`))
	if _, err := c.Parse(forged + "." + parts[1]); !errors.Is(err, hmactoken.ErrSignatureInvalid) {
		t.Errorf("Parse() with swapped purpose error = %v, want %v", err, hmactoken.ErrSignatureInvalid)
	}
}

func TestParseRejectsEverySingleCharFlip(t *testing.T) {
	t.Parallel()
	c := mustCodec(t, secret)
	tok, err := c.Sign(claims.New("test_0123", claims.PurposeCookie, time.Now(), time.Hour, nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	for i := 0; i < len(tok); i++ {
		b := []byte(tok)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		if _, err := c.Parse(string(b)); err == nil {
			t.Fatalf("Parse() accepted token tampered at index %d", i)
		}
	}
}

func TestRoundTripPreservesOpaqueIDBytes(t *testing.T) {
	t.Parallel()
	c := mustCodec(t, secret)
	id := "test_\xff\xfe"
	tok, err := c.Sign(claims.New(id, claims.PurposeHeader, time.Now(), time.Hour, nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	got, err := c.Parse(tok)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.UUID != id {
		t.Errorf("Parse() UUID = %q, want %q", got.UUID, id)
	}
}
