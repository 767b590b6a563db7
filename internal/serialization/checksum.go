package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ParameterChecksum returns the hex SHA-256 of values encoded as
// little-endian IEEE 754 float64s.
func ParameterChecksum(values []float64) string {
	buf := make([]byte, 0, 8*len(values))
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	sum := ComputeChecksum(buf)
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum compares the checksum of values against stored.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(values []float64, stored string) error {
	if ParameterChecksum(values) != stored {
		return ErrChecksumMismatch
	}
	return nil
}
