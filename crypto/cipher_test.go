package crypto

import (
	"bytes"
	stdaes "crypto/aes"
	stdcipher "crypto/cipher"
	"encoding/hex"
	"testing"
)

var _ stdcipher.Block = (*Cipher)(nil)

func TestCipherFIPS197(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		plain  string
		cipher string
	}{
		{
			name:   "aes-128",
			key:    "000102030405060708090a0b0c0d0e0f",
			plain:  "00112233445566778899aabbccddeeff",
			cipher: "69c4e0d86a7b0430d8cdb78070b4c55a",
		},
		{
			name:   "aes-256",
			key:    "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			plain:  "00112233445566778899aabbccddeeff",
			cipher: "8ea2b7ca516745bfeafc49904b496089",
		},
		{
			name:   "appendix-b",
			key:    "2b7e151628aed2a6abf7158809cf4f3c",
			plain:  "3243f6a8885a308d313198a2e0370734",
			cipher: "3925841d02dc09fbdc118597196a0b32",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher(mustHex(t, tt.key))
			if err != nil {
				t.Fatalf("NewCipher error = %v", err)
			}
			dst := make([]byte, BlockSize)
			c.Encrypt(dst, mustHex(t, tt.plain))
			if got := hex.EncodeToString(dst); got != tt.cipher {
				t.Fatalf("Encrypt = %s, want %s", got, tt.cipher)
			}
			c.Decrypt(dst, dst)
			if got := hex.EncodeToString(dst); got != tt.plain {
				t.Fatalf("Decrypt = %s, want %s", got, tt.plain)
			}
		})
	}
}

func TestCipherMatchesStdlib(t *testing.T) {
	for _, keyLen := range []int{16, 32} {
		key := benchData(keyLen, byte(keyLen))
		ours, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher error = %v", err)
		}
		std, err := stdaes.NewCipher(key)
		if err != nil {
			t.Fatalf("aes.NewCipher error = %v", err)
		}
		got := make([]byte, BlockSize)
		want := make([]byte, BlockSize)
		for i := range 64 {
			block := benchData(BlockSize, byte(i*7))
			ours.Encrypt(got, block)
			std.Encrypt(want, block)
			if !bytes.Equal(got, want) {
				t.Fatalf("key %d block %d: Encrypt = %x, want %x", keyLen, i, got, want)
			}
		}
	}
}

func TestStateEnginePrecondition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("EncryptState with one round key did not panic")
		}
	}()
	var s State
	EncryptState(&s, make([]Matrix, 1))
}

func TestCipherRounds(t *testing.T) {
	c, err := NewCipher(make([]byte, 32))
	if err != nil {
		t.Fatalf("NewCipher error = %v", err)
	}
	if c.Rounds() != 14 || len(c.RoundKeys()) != 15 {
		t.Fatalf("Rounds() = %d, len(RoundKeys()) = %d", c.Rounds(), len(c.RoundKeys()))
	}
	keys := c.RoundKeys()
	keys[0][0] ^= 0xff
	if c.RoundKeys()[0] == keys[0] {
		t.Fatalf("RoundKeys returned shared storage")
	}
}
