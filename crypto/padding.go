package crypto

import (
	"bytes"
	"fmt"
)

// PKCS7Pad returns data padded to a multiple of blockSize using PKCS7. A
// full block of padding is added when data is already aligned. The caller's
// slice is never written to.
func PKCS7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+padding)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// PKCS7Unpad removes PKCS7 padding added by PKCS7Pad.
func PKCS7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data: %w", ErrInvalidPadding)
	}
	if len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of %d: %w", len(data), BlockSize, ErrInvalidPadding)
	}
	padding := int(data[len(data)-1])
	if padding > BlockSize || padding == 0 {
		return nil, fmt.Errorf("pad value %d: %w", padding, ErrInvalidPadding)
	}
	for i := len(data) - padding; i < len(data); i++ {
		if data[i] != byte(padding) {
			return nil, fmt.Errorf("pad byte at position %d: %w", i, ErrInvalidPadding)
		}
	}
	return data[:len(data)-padding], nil
}
