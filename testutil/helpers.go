package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"os"
	"testing"
)

const merchantIDRandomLength = 16

func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}

	return hex.EncodeToString(bytes)[:length]
}

func RandomInt(minVal, maxVal int64) int64 {
	if minVal >= maxVal {
		return minVal
	}

	n, err := rand.Int(rand.Reader, big.NewInt(maxVal-minVal+1))
	if err != nil {
		return minVal
	}

	return n.Int64() + minVal
}

// RandomMerchantID returns an id accepted by the "merchantid" validation tag.
func RandomMerchantID(prefix string) string {
	return prefix + "_" + RandomString(merchantIDRandomLength)
}

func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping test in short mode")
	}
}

func RequireEnv(t *testing.T, key string) string {
	t.Helper()

	value := os.Getenv(key)

	if value == "" {
		t.Skipf("Environment variable %s is required but not set", key)
	}

	return value
}
