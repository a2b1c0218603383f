package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// ReferencePrefix is the fixed alphabetic prefix of every reference number
	ReferencePrefix = "LAU"

	referenceDigits = 6
	maxAttempts     = 10
)

// GenerateReferenceNumber produces a unique human-shareable reference of the
// form LAU + 6 digits. The first candidate is derived from the millisecond
// timestamp; if the store already holds that code, further candidates use
// random digits. exists is consulted before every candidate is accepted.
func GenerateReferenceNumber(exists func(code string) (bool, error)) (string, error) {
	candidate := timestampCandidate(time.Now())

	for attempt := 0; attempt < maxAttempts; attempt++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("reference number check failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate, err = randomCandidate()
		if err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("could not generate unique reference number after %d attempts", maxAttempts)
}

func timestampCandidate(now time.Time) string {
	ms := now.UnixMilli() % 1000000
	return fmt.Sprintf("%s%06d", ReferencePrefix, ms)
}

func randomCandidate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("reference number entropy failed: %w", err)
	}
	return fmt.Sprintf("%s%06d", ReferencePrefix, n.Int64()), nil
}
