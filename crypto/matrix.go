package crypto

import (
	"fmt"
	"strings"
)

// BlockSize is the Rijndael/AES block size in bytes.
const BlockSize = 16

// Matrix is the 4x4 byte grid AES operates on. It is stored column-major:
// row r of column c lives at index c*4+r, so a 16-byte block loads with a
// plain copy, filling column 0 top to bottom, then column 1, and so on.
type Matrix [BlockSize]byte

// LoadMatrix returns a Matrix filled from the first 16 bytes of src.
func LoadMatrix(src []byte) (Matrix, error) {
	var m Matrix
	if err := m.Load(src); err != nil {
		return Matrix{}, err
	}
	return m, nil
}

// Load overwrites m with the first 16 bytes of src.
func (m *Matrix) Load(src []byte) error {
	if len(src) < BlockSize {
		return fmt.Errorf("load matrix from %d bytes: %w", len(src), ErrShortBlock)
	}
	copy(m[:], src[:BlockSize])
	return nil
}

// At returns the byte at row r, column c.
func (m *Matrix) At(r, c int) byte {
	return m[c*4+r]
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v byte) {
	m[c*4+r] = v
}

// Column returns column i top to bottom. i must be in [0,3].
func (m *Matrix) Column(i int) [4]byte {
	return [4]byte(m[i*4 : i*4+4])
}

// SetColumn replaces column i with col. i must be in [0,3].
func (m *Matrix) SetColumn(col [4]byte, i int) {
	copy(m[i*4:i*4+4], col[:])
}

// Xor combines other into m element-wise.
func (m *Matrix) Xor(other *Matrix) {
	for i := range BlockSize {
		m[i] ^= other[i]
	}
}

// XorBytes combines a flat 16-byte sequence into m. Position p maps to row
// p%4, column p/4, the same order Load uses.
func (m *Matrix) XorBytes(b []byte) {
	_ = b[BlockSize-1]
	for i := range BlockSize {
		m[i] ^= b[i]
	}
}

// String renders the matrix as four rows of hex bytes.
func (m Matrix) String() string {
	var sb strings.Builder
	for r := range 4 {
		sb.WriteString("[")
		for c := range 4 {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02x", m.At(r, c))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
