package crypto

import "fmt"

// EncryptState runs the forward cipher over s in place.
// roundKeys must hold at least two keys.
func EncryptState(s *State, roundKeys []Matrix) {
	if len(roundKeys) < 2 {
		panic(fmt.Sprintf("crypto: %d round keys, need at least 2", len(roundKeys)))
	}
	last := len(roundKeys) - 1

	s.AddRoundKey(&roundKeys[0])
	for i := 1; i < last; i++ {
		s.SubBytes()
		s.ShiftRows()
		s.MixColumns()
		s.AddRoundKey(&roundKeys[i])
	}

	// Final round (no MixColumns).
	s.SubBytes()
	s.ShiftRows()
	s.AddRoundKey(&roundKeys[last])
}

// DecryptState runs the inverse cipher over s in place, consuming roundKeys
// last to first. roundKeys must hold at least two keys.
func DecryptState(s *State, roundKeys []Matrix) {
	if len(roundKeys) < 2 {
		panic(fmt.Sprintf("crypto: %d round keys, need at least 2", len(roundKeys)))
	}
	last := len(roundKeys) - 1

	s.AddRoundKey(&roundKeys[last])
	for i := last - 1; i > 0; i-- {
		s.InvShiftRows()
		s.InvSubBytes()
		s.AddRoundKey(&roundKeys[i])
		s.InvMixColumns()
	}

	s.InvShiftRows()
	s.InvSubBytes()
	s.AddRoundKey(&roundKeys[0])
}

// Cipher is an expanded AES key. It implements crypto/cipher.Block and is
// safe for concurrent use once created.
type Cipher struct {
	roundKeys []Matrix
}

// NewCipher expands key into a Cipher. See ExpandKey for accepted lengths.
func NewCipher(key []byte) (*Cipher, error) {
	roundKeys, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{roundKeys: roundKeys}, nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

// Rounds returns the number of rounds the key runs.
func (c *Cipher) Rounds() int { return len(c.roundKeys) - 1 }

// RoundKeys returns a copy of the expanded key.
func (c *Cipher) RoundKeys() []Matrix {
	return append([]Matrix(nil), c.roundKeys...)
}

// Encrypt enciphers the first block of src into dst.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("crypto: input not full block")
	}
	s := State{m: Matrix(src[:BlockSize])}
	EncryptState(&s, c.roundKeys)
	copy(dst, s.m[:])
}

// Decrypt deciphers the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("crypto: input not full block")
	}
	s := State{m: Matrix(src[:BlockSize])}
	DecryptState(&s, c.roundKeys)
	copy(dst, s.m[:])
}
