package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateOTP creates a numeric OTP of the given length.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand failing means the platform entropy source is broken
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits)
}
