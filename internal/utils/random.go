package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a seeded pseudo-random source with helpers for the sampling
// operations the generators need. Given the same seed it reproduces the
// same sequence, which is what makes whole runs reproducible.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRandom creates a Random seeded with seed. Seed 0 requests a
// cryptographically random seed (non-reproducible runs).
func NewRandom(seed int64) *Random {
	var actual uint64
	if seed == 0 {
		actual = randomSeed()
	} else {
		actual = uint64(seed)
	}
	return newWithSeed(actual)
}

func newWithSeed(seed uint64) *Random {
	return &Random{
		rng:  rand.New(rand.NewPCG(seed, seed^0xDEADBEEF)),
		seed: seed,
	}
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed this source was initialized with.
func (r *Random) Seed() uint64 {
	return r.seed
}

// Fork derives a new independent stream by drawing a seed from this one.
// Fork order matters: callers that need order-independence use ForkAt.
func (r *Random) Fork() *Random {
	r.mu.Lock()
	defer r.mu.Unlock()
	return newWithSeed(r.rng.Uint64())
}

// ForkAt derives an independent stream from this source's seed and an index.
// Unlike Fork it does not consume state, so the stream for index i is the
// same no matter how many other forks were taken first. Used to give each
// profile its own transaction stream under parallel generation.
func (r *Random) ForkAt(index int64) *Random {
	return newWithSeed(splitmix64(r.seed + uint64(index)*0x9E3779B97F4A7C15))
}

// splitmix64 finalizer, used to decorrelate derived seeds.
func splitmix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// IntN returns a pseudo-random int in [0, n).
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max].
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Int64N returns a pseudo-random int64 in [0, n).
func (r *Random) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(n)
}

// Int64Range returns a pseudo-random int64 in [min, max].
func (r *Random) Int64Range(min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + r.Int64N(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Float64Range returns a pseudo-random float64 in [min, max).
func (r *Random) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Bool returns a pseudo-random boolean.
func (r *Random) Bool() bool {
	return r.IntN(2) == 1
}

// Probability returns true with probability p.
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// PickString returns a uniformly chosen element of slice.
func (r *Random) PickString(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	return slice[r.IntN(len(slice))]
}

// Poisson draws from a Poisson distribution with the given mean.
// Knuth's multiplication method; fine for the small lambdas used for
// per-profile transaction counts.
func (r *Random) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= r.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

const alnumCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// AlnumString generates a random alphanumeric string of the given length.
func (r *Random) AlnumString(length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = alnumCharset[r.IntN(len(alnumCharset))]
	}
	return string(result)
}

// NumericString generates a random digit string of the given length.
// Leading zeros are allowed.
func (r *Random) NumericString(length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = '0' + byte(r.IntN(10))
	}
	return string(result)
}
