package crypto

import (
	"fmt"
	"strings"
)

// Mode selects how blocks are chained.
type Mode int

const (
	ModeECB Mode = iota
	ModeCBC
)

func (m Mode) String() string {
	switch m {
	case ModeECB:
		return "ecb"
	case ModeCBC:
		return "cbc"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "ecb" or "cbc" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ecb":
		return ModeECB, nil
	case "cbc":
		return ModeCBC, nil
	default:
		return 0, fmt.Errorf("mode %q: %w", s, ErrUnknownMode)
	}
}

// ZeroIV is the fixed initialization vector of CBC mode. Nothing is stored
// alongside the ciphertext, so both sides must use the same value.
var ZeroIV Matrix

// EncryptECB pads plaintext and enciphers every block independently.
func EncryptECB(c *Cipher, plaintext []byte) []byte {
	data := PKCS7Pad(plaintext, BlockSize)
	out := make([]byte, 0, len(data))
	var s State
	for i := 0; i < len(data); i += BlockSize {
		s.m = Matrix(data[i : i+BlockSize])
		EncryptState(&s, c.roundKeys)
		out = s.AppendBytes(out)
	}
	return out
}

// DecryptECB deciphers every block independently. Padding is left in place.
func DecryptECB(c *Cipher, ciphertext []byte) ([]byte, error) {
	if err := checkCiphertext(ciphertext); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(ciphertext))
	var s State
	for i := 0; i < len(ciphertext); i += BlockSize {
		s.m = Matrix(ciphertext[i : i+BlockSize])
		DecryptState(&s, c.roundKeys)
		out = s.AppendBytes(out)
	}
	return out, nil
}

// EncryptCBC pads plaintext and enciphers it in CBC mode starting from ZeroIV.
func EncryptCBC(c *Cipher, plaintext []byte) []byte {
	data := PKCS7Pad(plaintext, BlockSize)
	out := make([]byte, 0, len(data))
	chain := ZeroIV
	var s State
	for i := 0; i < len(data); i += BlockSize {
		s.m = Matrix(data[i : i+BlockSize])
		s.m.Xor(&chain)
		EncryptState(&s, c.roundKeys)
		out = s.AppendBytes(out)
		chain = s.m
	}
	return out
}

// DecryptCBC deciphers CBC ciphertext produced from ZeroIV. Padding is left
// in place.
func DecryptCBC(c *Cipher, ciphertext []byte) ([]byte, error) {
	if err := checkCiphertext(ciphertext); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(ciphertext))
	chain := ZeroIV
	var s State
	for i := 0; i < len(ciphertext); i += BlockSize {
		s.m = Matrix(ciphertext[i : i+BlockSize])
		// Capture the ciphertext block before the inverse cipher overwrites it.
		prev := s.m
		DecryptState(&s, c.roundKeys)
		s.m.Xor(&chain)
		chain = prev
		out = s.AppendBytes(out)
	}
	return out, nil
}

func checkCiphertext(ciphertext []byte) error {
	if len(ciphertext)%BlockSize != 0 {
		return fmt.Errorf("ciphertext length %d is not a multiple of %d: %w", len(ciphertext), BlockSize, ErrTruncatedCiphertext)
	}
	return nil
}

// Engine is a key and mode bound to one direction. The key and mode are
// checked when the Engine is created, before any data is seen.
type Engine struct {
	c       *Cipher
	mode    Mode
	decrypt bool
}

// NewEncrypter accepts 16 and 32-byte keys.
func NewEncrypter(mode Mode, key []byte) (*Engine, error) {
	if len(key) != 16 && len(key) != 32 {
		return nil, fmt.Errorf("encrypt: key length %d: %w", len(key), ErrInvalidKeySize)
	}
	return newEngine(mode, key, false)
}

// NewDecrypter also lets 24-byte keys through length validation; they then
// fail in the key schedule with ErrUnsupportedKeySize.
func NewDecrypter(mode Mode, key []byte) (*Engine, error) {
	return newEngine(mode, key, true)
}

func newEngine(mode Mode, key []byte, decrypt bool) (*Engine, error) {
	op := "encrypt"
	if decrypt {
		op = "decrypt"
	}
	if mode != ModeECB && mode != ModeCBC {
		return nil, fmt.Errorf("%s: %v: %w", op, mode, ErrUnknownMode)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Engine{c: c, mode: mode, decrypt: decrypt}, nil
}

// Apply enciphers (with padding) or deciphers (leaving padding in place) data.
func (e *Engine) Apply(data []byte) ([]byte, error) {
	switch {
	case !e.decrypt && e.mode == ModeCBC:
		return EncryptCBC(e.c, data), nil
	case !e.decrypt:
		return EncryptECB(e.c, data), nil
	}

	var out []byte
	var err error
	if e.mode == ModeCBC {
		out, err = DecryptCBC(e.c, data)
	} else {
		out, err = DecryptECB(e.c, data)
	}
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return out, nil
}

// Encrypt pads and enciphers plaintext with a 16 or 32-byte key.
func Encrypt(mode Mode, key, plaintext []byte) ([]byte, error) {
	e, err := NewEncrypter(mode, key)
	if err != nil {
		return nil, err
	}
	return e.Apply(plaintext)
}

// Decrypt deciphers ciphertext. Keys of 24 bytes pass length validation but
// fail with ErrUnsupportedKeySize. The result still carries its padding.
func Decrypt(mode Mode, key, ciphertext []byte) ([]byte, error) {
	e, err := NewDecrypter(mode, key)
	if err != nil {
		return nil, err
	}
	return e.Apply(ciphertext)
}
