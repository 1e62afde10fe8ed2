package checkout

import (
	"crypto/rand"
	"math/big"

	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

const (
	referencePrefix   = "AL-"
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 6
)

// mintReference generates a customer-facing order reference such as
// "AL-7K2Q9A". Uniqueness is enforced by the orders table; callers retry on
// collision.
func mintReference() (string, error) {
	max := big.NewInt(int64(len(referenceAlphabet)))
	buf := make([]byte, referenceLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint order reference")
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return referencePrefix + string(buf), nil
}
