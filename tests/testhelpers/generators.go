package testhelpers

import (
	"math/rand"
	"time"
)

// generates a new random number seeded with the current time
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generates a valid random JobId
func GenJobId(rng *rand.Rand) string {
	return GenRandomAlphaNumericString(rng)
}

// Generates an AlphaNumericString of random length (0, 21]
func GenRandomAlphaNumericString(rng *rand.Rand) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	length := rng.Intn(20) + 1
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = chars[rng.Intn(len(chars))]
	}

	return string(result)
}

// Picks one of the given values uniformly
func PickInt64(rng *rand.Rand, values ...int64) int64 {
	return values[rng.Intn(len(values))]
}
