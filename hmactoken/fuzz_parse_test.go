package hmactoken

import (
	"testing"
	"time"

	"github.com/dualtoken/goCSRF/claims"
)

// FuzzCodecParse feeds arbitrary strings to Parse. It must never panic and
// must never return claims with an unknown purpose.
func FuzzCodecParse(f *testing.F) {
	c, err := New([]byte("fuzz-secret-fuzz-secret-fuzz-sec"))
	if err != nil {
		f.Fatal(err)
	}
	valid, err := c.Sign(claims.New("seed", claims.PurposeHeader, time.Now(), time.Hour, nil))
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add("")
	f.Add(".")
	f.Add("a.b")
	f.Add("eyJ1dWlkIjoieCJ9.AAAA")

	f.Fuzz(func(t *testing.T, input string) {
		cl, err := c.Parse(input)
		if err != nil {
			return
		}
		if !cl.Purpose.Valid() {
			t.Fatalf("Parse accepted invalid purpose %q", cl.Purpose)
		}
	})
}
