package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned for keys that are not 16 or 32 bytes long.
	ErrInvalidKeySize = errors.New("invalid key size")
	// ErrUnsupportedKeySize is returned for 24-byte keys. The length is valid
	// AES but the key schedule here only expands 128 and 256-bit keys.
	ErrUnsupportedKeySize = errors.New("unsupported key size")
	// ErrShortBlock is returned when fewer than BlockSize bytes are available.
	ErrShortBlock = errors.New("short block")
	// ErrTruncatedCiphertext is returned when a ciphertext length is not a
	// multiple of BlockSize.
	ErrTruncatedCiphertext = errors.New("truncated ciphertext")
	// ErrInvalidPadding is returned by PKCS7Unpad.
	ErrInvalidPadding = errors.New("invalid PKCS7 padding")
	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown block mode")
)

// IsConfigError reports whether err was caused by a bad key or mode rather
// than by the data being processed.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidKeySize) ||
		errors.Is(err, ErrUnsupportedKeySize) ||
		errors.Is(err, ErrUnknownMode)
}
