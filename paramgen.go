package main

import (
	"crypto/dsa"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"math/big"
)

const (
	// Smallest modulus the generator accepts.
	minModulusBits = 512

	// Miller-Rabin iterations for the final primality check.
	mrIterations = 64

	// Upper bound for the trial division sieve.
	sieveLimit = 10000
)

// trialPrimes holds the odd primes below sieveLimit, used for cheap trial
// division ahead of Miller-Rabin. Candidates are always far larger than the
// sieve bound.
var trialPrimes []*big.Int

func init() {
	composite := make([]bool, sieveLimit)
	for i := 2; i*i < sieveLimit; i++ {
		if !composite[i] {
			for j := i * i; j < sieveLimit; j += i {
				composite[j] = true
			}
		}
	}
	for i := 3; i < sieveLimit; i += 2 {
		if !composite[i] {
			trialPrimes = append(trialPrimes, big.NewInt(int64(i)))
		}
	}
}

func hasSmallFactor(n *big.Int) bool {
	var rem big.Int
	for _, p := range trialPrimes {
		if rem.Rem(n, p).Sign() == 0 {
			return true
		}
	}
	return false
}

var errGenCancelled = errors.New("parameter generation cancelled")

// qBitsForModulus returns the subgroup order size matching a modulus of the
// given length, following the FIPS 186-4 pairings: 256-bit q from 2048-bit
// moduli up, 160-bit below.
func qBitsForModulus(bits int) int {
	if bits >= 2048 {
		return 256
	}
	return 160
}

func hashForQBits(qbits int) hash.Hash {
	if qbits == 256 {
		return sha256.New()
	}
	return sha1.New()
}

// generateParameters searches for DSA domain parameters with a modulus of
// exactly bits bits using the FIPS 186-4 A.1.1.2 construction: q is derived
// by hashing a random seed, p by walking the hash chain started from that
// seed until a suitable prime appears, and g is the smallest generator of
// the order-q subgroup. cb is invoked at every search milestone and may
// abort by returning false.
func generateParameters(bits int, random io.Reader, cb GenCallback) (*dsa.Parameters, error) {
	if bits < minModulusBits {
		return nil, fmt.Errorf("prime size %d out of range (minimum %d bits)", bits, minModulusBits)
	}
	if cb == nil {
		cb = func(GenStage) bool { return true }
	}

	qbits := qBitsForModulus(bits)
	h := hashForQBits(qbits)
	outlen := h.Size() * 8
	seed := make([]byte, qbits/8)

	// X is assembled from n+1 hash blocks with the top block cut to b bits,
	// so that forcing bit L-1 yields exactly L bits.
	n := (bits+outlen-1)/outlen - 1
	b := bits - 1 - n*outlen

	one := big.NewInt(1)
	q := new(big.Int)
	p := new(big.Int)

	for {
		// Hash fresh seeds until the derived q is prime.
		for {
			if !cb(StageCandidate) {
				return nil, errGenCancelled
			}
			if _, err := io.ReadFull(random, seed); err != nil {
				return nil, fmt.Errorf("reading random seed: %w", err)
			}
			q.SetBytes(hashBytes(h, seed))
			q.SetBit(q, qbits-1, 1)
			q.SetBit(q, 0, 1)
			if hasSmallFactor(q) {
				continue
			}
			if !cb(StageProbable) {
				return nil, errGenCancelled
			}
			if q.ProbablyPrime(mrIterations) {
				break
			}
		}
		if !cb(StagePrime) || !cb(StageDone) {
			return nil, errGenCancelled
		}

		// Walk the chain seed+1, seed+2, ... assembling candidates for p
		// congruent to 1 mod 2q. The counter bound is from A.1.1.2 step 11.
		twoQ := new(big.Int).Lsh(q, 1)
		c := new(big.Int)
		offset := uint64(1)
		for counter := 0; counter < 4*bits; counter++ {
			if !cb(StageCandidate) {
				return nil, errGenCancelled
			}
			assembleCandidate(p, h, seed, offset, n, b, bits)
			c.Mod(p, twoQ)
			p.Sub(p, c.Sub(c, one))
			if p.BitLen() == bits && !hasSmallFactor(p) {
				if !cb(StageProbable) {
					return nil, errGenCancelled
				}
				if p.ProbablyPrime(mrIterations) {
					if !cb(StagePrime) || !cb(StageDone) {
						return nil, errGenCancelled
					}
					g, err := findGenerator(p, q)
					if err != nil {
						return nil, err
					}
					return &dsa.Parameters{
						P: new(big.Int).Set(p),
						Q: new(big.Int).Set(q),
						G: g,
					}, nil
				}
			}
			offset += uint64(n) + 1
		}
		// Counter exhausted without a prime; restart with a new seed.
	}
}

// assembleCandidate builds X = W + 2^(L-1) from the hash chain at the given
// offset, leaving the result in x.
func assembleCandidate(x *big.Int, h hash.Hash, seed []byte, offset uint64, n, b, bits int) {
	outlen := uint(h.Size() * 8)
	block := new(big.Int)
	x.SetInt64(0)
	for j := 0; j <= n; j++ {
		block.SetBytes(hashBytes(h, addSeed(seed, offset+uint64(j))))
		if j == n {
			// Keep only the b low bits of the top block.
			mask := new(big.Int).Lsh(big.NewInt(1), uint(b))
			block.Mod(block, mask)
		}
		x.Or(x, block.Lsh(block, uint(j)*outlen))
	}
	x.SetBit(x, bits-1, 1)
}

// addSeed returns (seed + inc) mod 2^(8*len(seed)) as a fresh big-endian
// buffer of the same length.
func addSeed(seed []byte, inc uint64) []byte {
	out := make([]byte, len(seed))
	copy(out, seed)
	carry := inc
	for i := len(out) - 1; i >= 0 && carry > 0; i-- {
		sum := uint64(out[i]) + carry&0xff
		out[i] = byte(sum)
		carry = carry>>8 + sum>>8
	}
	return out
}

func hashBytes(h hash.Hash, data []byte) []byte {
	h.Reset()
	h.Write(data)
	return h.Sum(nil)
}

// findGenerator returns h^((p-1)/q) mod p for the smallest h >= 2 whose
// power is not one. For prime p and q dividing p-1 this is a generator of
// the order-q subgroup, and h = 2 succeeds almost always.
func findGenerator(p, q *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	e := new(big.Int).Sub(p, one)
	e.Div(e, q)
	g := new(big.Int)
	for h := big.NewInt(2); h.Cmp(p) < 0; h.Add(h, one) {
		g.Exp(h, e, p)
		if g.Cmp(one) != 0 {
			return g, nil
		}
	}
	return nil, errors.New("no generator found")
}
