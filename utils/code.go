package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateProductCode builds a human-readable unique code for a listing:
// the first three letters of the supplier's locality, upper-cased, plus a
// random hex suffix, e.g. "DEL-9F3A1C02".
func GenerateProductCode(locality string) string {
	prefix := strings.ToUpper(locality)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	buf := make([]byte, 4)
	rand.Read(buf) //nolint:errcheck // crypto/rand.Read does not fail on supported platforms
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(buf)))
}
