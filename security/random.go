package security

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mathrand "math/rand/v2"
	"sync"
	"time"
)

// RandomMode identifies the generator backing a RandomSource.
type RandomMode int

const (
	// ModeSecure draws from a cryptographically secure reader.
	ModeSecure RandomMode = iota

	// ModeDegraded draws from a non-cryptographic PRNG.
	// WARNING: output is predictable. Do not use it for CSRF state, nonces or PKCE verifiers.
	ModeDegraded
)

// String returns the mode name used in logs and metric attributes
func (m RandomMode) String() string {
	switch m {
	case ModeSecure:
		return "secure"
	case ModeDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ErrSecureRandomUnavailable is returned by NewRandomSource when the secure reader
// fails its probe and degraded mode was not allowed.
var ErrSecureRandomUnavailable = errors.New("secure random source unavailable")

// RandomConfig configures a RandomSource. The zero value selects crypto/rand and
// refuses to fall back.
type RandomConfig struct {
	// Reader overrides the secure source. Default: crypto/rand.Reader.
	// Reads from a custom Reader are serialized, so it need not be safe for
	// concurrent use.
	Reader io.Reader

	// AllowDegraded permits falling back to ModeDegraded when Reader fails its probe.
	// The active mode is reported by RandomSource.Mode().
	AllowDegraded bool

	// ForceDegraded selects ModeDegraded without probing Reader.
	ForceDegraded bool

	// DegradedSeed seeds the degraded PRNG. Zero derives a seed from the clock.
	DegradedSeed uint64
}

// RandomSource generates random bytes and URL-safe random strings for protocol
// parameters such as state and nonces. It is safe for concurrent use.
type RandomSource struct {
	mode   RandomMode
	reader io.Reader

	// lockReader is set for injected readers, whose reads are guarded by mu
	lockReader bool

	mu   sync.Mutex
	prng *mathrand.Rand
}

// NewRandomSource probes the configured secure reader and selects the mode.
func NewRandomSource(cfg RandomConfig) (*RandomSource, error) {
	reader := cfg.Reader
	if reader == nil {
		reader = rand.Reader
	}

	if !cfg.ForceDegraded {
		var probe [1]byte
		_, err := io.ReadFull(reader, probe[:])
		if err == nil {
			return &RandomSource{
				mode:       ModeSecure,
				reader:     reader,
				lockReader: reader != rand.Reader,
			}, nil
		}
		if !cfg.AllowDegraded {
			return nil, fmt.Errorf("%w: %w", ErrSecureRandomUnavailable, err)
		}
	}

	seed := cfg.DegradedSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &RandomSource{
		mode: ModeDegraded,
		prng: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Mode returns the active generator mode
func (s *RandomSource) Mode() RandomMode {
	return s.mode
}

// Bytes returns exactly n random bytes. n <= 0 returns an empty slice.
func (s *RandomSource) Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}

	if s.mode == ModeDegraded {
		return s.degradedBytes(n), nil
	}

	buf := make([]byte, n)
	if s.lockReader {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// String returns exactly n characters from the URL-safe base64 alphabet
// [A-Za-z0-9_-], without padding. n <= 0 returns "".
//
// ceil(3n/4) bytes are drawn, which is the fewest whose unpadded encoding has at
// least n characters; the encoding is then truncated to n.
func (s *RandomSource) String(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	raw, err := s.Bytes(StringByteLen(n))
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw)[:n], nil
}

// StringByteLen returns the number of random bytes String(n) draws: ceil(3n/4),
// or 0 for n <= 0.
func StringByteLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (3*n + 3) / 4
}

// degradedBytes assembles 32-bit signed integer draws, little endian, until at
// least n bytes exist, then trims to n.
func (s *RandomSource) degradedBytes(n int) []byte {
	chunks := (n + 3) / 4
	buf := make([]byte, 0, chunks*4)

	s.mu.Lock()
	for range chunks {
		v := int32(s.prng.Uint32())
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	s.mu.Unlock()

	return buf[:n]
}
