package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// Stream generates deterministic bytes using HMAC-SHA256 keyed by the seed
// material. The byte-level contract is fixed and versioned by golden vectors:
// round r is HMAC-SHA256(seed, "label:r"), consumed left to right, and every
// float takes exactly 4 bytes. Independent implementations that follow this
// contract reproduce race results bit for bit.
type Stream struct {
	seed         string
	label        string
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewStream creates a byte stream for the given seed material and label.
// The label scopes the stream: each race entrant gets its own label so that
// draws are independent of entrant order.
func NewStream(seed, label string) *Stream {
	s := &Stream{
		seed:  seed,
		label: label,
	}
	s.generateRound()
	return s
}

// Next returns the next byte from the stream.
func (s *Stream) Next() byte {
	if s.currentPos >= 32 {
		s.currentRound++
		s.currentPos = 0
		s.generateRound()
	}

	b := s.buffer[s.currentPos]
	s.currentPos++
	return b
}

// NextFloat generates the next float in [0, 1) using exactly 4 bytes.
func (s *Stream) NextFloat() float64 {
	b0 := s.Next()
	b1 := s.Next()
	b2 := s.Next()
	b3 := s.Next()

	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

// NextSigned generates the next float in [-1, 1].
func (s *Stream) NextSigned() float64 {
	return s.NextFloat()*2 - 1
}

func (s *Stream) generateRound() {
	h := hmac.New(sha256.New, []byte(s.seed))
	message := fmt.Sprintf("%s:%d", s.label, s.currentRound)
	h.Write([]byte(message))
	copy(s.buffer[:], h.Sum(nil))
}

// bytesToFloat converts exactly 4 bytes to float64: sum of b[i]/256^(i+1).
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}

// Floats generates count floats for the given seed material and label.
func Floats(seed, label string, count int) []float64 {
	s := NewStream(seed, label)
	floats := make([]float64, count)

	for i := 0; i < count; i++ {
		floats[i] = s.NextFloat()
	}

	return floats
}

// CommitSeed returns the hex SHA-256 commitment of a server seed. The house
// publishes this before a race and discloses the seed afterwards.
func CommitSeed(serverSeed string) string {
	h := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(h[:])
}
