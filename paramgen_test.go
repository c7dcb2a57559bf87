package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParameters(t *testing.T) {
	for _, bits := range []int{512, 544, 1024} {
		bits := bits
		t.Run(fmt.Sprintf("%dbit", bits), func(t *testing.T) {
			t.Parallel()
			params, err := generateParameters(bits, rand.Reader, nil)
			require.NoError(t, err)

			assert.Equal(t, bits, params.P.BitLen())
			assert.Equal(t, 160, params.Q.BitLen())
			require.True(t, params.P.ProbablyPrime(32))
			require.True(t, params.Q.ProbablyPrime(32))

			// q divides p-1.
			pm1 := new(big.Int).Sub(params.P, big.NewInt(1))
			assert.Equal(t, 0, new(big.Int).Mod(pm1, params.Q).Sign())

			// g generates the order-q subgroup.
			one := big.NewInt(1)
			assert.NotEqual(t, 0, params.G.Cmp(one))
			gq := new(big.Int).Exp(params.G, params.Q, params.P)
			assert.Equal(t, 0, gq.Cmp(one))
		})
	}
}

func TestGenerateParametersRejectsSmallSizes(t *testing.T) {
	for _, bits := range []int{0, 1, 256, 511} {
		_, err := generateParameters(bits, rand.Reader, nil)
		require.Error(t, err, "bits=%d", bits)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestGenerateParametersStages(t *testing.T) {
	var stages []GenStage
	_, err := generateParameters(512, rand.Reader, func(s GenStage) bool {
		stages = append(stages, s)
		return true
	})
	require.NoError(t, err)
	require.NotEmpty(t, stages)

	assert.Equal(t, StageCandidate, stages[0])
	assert.Equal(t, StageDone, stages[len(stages)-1])

	var primes, dones int
	for _, s := range stages {
		switch s {
		case StagePrime:
			primes++
		case StageDone:
			dones++
		case StageCandidate, StageProbable:
		default:
			t.Fatalf("unexpected stage %d", s)
		}
	}
	// At least one accepted prime and one completed phase each for q and p.
	assert.GreaterOrEqual(t, primes, 2)
	assert.Equal(t, primes, dones)
}

func TestGenerateParametersCancel(t *testing.T) {
	calls := 0
	_, err := generateParameters(512, rand.Reader, func(GenStage) bool {
		calls++
		return false
	})
	require.ErrorIs(t, err, errGenCancelled)
	assert.Equal(t, 1, calls)
}

func TestQBitsForModulus(t *testing.T) {
	assert.Equal(t, 160, qBitsForModulus(512))
	assert.Equal(t, 160, qBitsForModulus(1024))
	assert.Equal(t, 160, qBitsForModulus(2047))
	assert.Equal(t, 256, qBitsForModulus(2048))
	assert.Equal(t, 256, qBitsForModulus(3072))
}

func TestTrialPrimes(t *testing.T) {
	require.NotEmpty(t, trialPrimes)
	assert.Equal(t, int64(3), trialPrimes[0].Int64())
	assert.Equal(t, int64(9973), trialPrimes[len(trialPrimes)-1].Int64())
	// 1229 primes below 10000, minus the even one.
	assert.Len(t, trialPrimes, 1228)
}

func TestHasSmallFactor(t *testing.T) {
	// 9973 * 7919, both inside the sieve range.
	assert.True(t, hasSmallFactor(big.NewInt(9973*7919)))
	assert.True(t, hasSmallFactor(big.NewInt(3*1000003)))
	// 10^6+3 is prime.
	assert.False(t, hasSmallFactor(big.NewInt(1000003)))
	// 2^64+1 factor, no divisor below the sieve bound.
	assert.False(t, hasSmallFactor(big.NewInt(67280421310721)))
}

func TestAddSeed(t *testing.T) {
	seed := []byte{0x00, 0xff, 0xff}
	assert.Equal(t, []byte{0x01, 0x00, 0x00}, addSeed(seed, 1))
	assert.Equal(t, []byte{0x01, 0x00, 0x09}, addSeed(seed, 10))
	// The input buffer is never touched.
	assert.Equal(t, []byte{0x00, 0xff, 0xff}, seed)

	// Multi-byte increment with an internal carry.
	assert.Equal(t, []byte{0x12, 0xe0, 0x23}, addSeed([]byte{0x12, 0x34, 0x56}, 0xabcd))

	// Overflow wraps modulo the seed length.
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, addSeed([]byte{0xff, 0xff, 0xff}, 1))
}
