package internal

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

const simpleIDRandomSize = 16

// RandomHex returns n bytes from crypto/rand, hex encoded.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NewSimpleID returns "<base36 unix nanos>_<32 hex chars>". The time part
// orders ids loosely; the random part carries the unpredictability.
func NewSimpleID() (string, error) {
	random, err := RandomHex(simpleIDRandomSize)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(time.Now().UnixNano(), 36) + "_" + random, nil
}
