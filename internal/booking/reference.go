package booking

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const refSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewReference generates a human-readable booking reference of the form
// <prefix>-<base36 unix millis>-<5 random chars>, e.g. "BK-LXK2M9QP-7G4QD".
// Collisions are unlikely but not impossible; the storage layer enforces
// uniqueness and the service retries once on a duplicate.
func NewReference(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = refSuffixAlphabet[rand.IntN(len(refSuffixAlphabet))]
	}

	return prefix + "-" + ts + "-" + string(suffix)
}
