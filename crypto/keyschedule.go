package crypto

import "fmt"

// Rounds returns the number of cipher rounds for a key of keyLen bytes.
func Rounds(keyLen int) (int, error) {
	switch keyLen {
	case 16:
		return 10, nil
	case 24:
		return 12, nil
	case 32:
		return 14, nil
	default:
		return 0, fmt.Errorf("key length %d: %w", keyLen, ErrInvalidKeySize)
	}
}

// ExpandKey expands a 16 or 32-byte key into rounds+1 round keys. The result
// depends on the key alone. 24-byte keys are rejected with
// ErrUnsupportedKeySize.
func ExpandKey(key []byte) ([]Matrix, error) {
	rounds, err := Rounds(len(key))
	if err != nil {
		return nil, err
	}
	if len(key) == 24 {
		return nil, fmt.Errorf("key length 24: %w", ErrUnsupportedKeySize)
	}

	// n is the number of 16-byte blocks in the key, and also how far back
	// each new round key reaches for its XOR partner.
	n := len(key) / BlockSize
	roundKeys := make([]Matrix, n, rounds+1)
	for i := range n {
		if err := roundKeys[i].Load(key[i*BlockSize:]); err != nil {
			return nil, err
		}
	}

	for i := 1; len(roundKeys) < rounds+1; i++ {
		t := roundKeys[len(roundKeys)-1].Column(3)
		keyCore(&t, i)
		roundKeys = append(roundKeys, nextRoundKey(&roundKeys[len(roundKeys)-n], &t))

		// 256-bit keys derive every second block from SubWord alone.
		if n == 2 && len(roundKeys) < rounds+1 {
			subWord(&t)
			roundKeys = append(roundKeys, nextRoundKey(&roundKeys[len(roundKeys)-n], &t))
		}
	}
	return roundKeys, nil
}

// keyCore applies RotWord, SubWord and the round constant for iteration i.
func keyCore(t *[4]byte, i int) {
	t[0], t[1], t[2], t[3] = t[1], t[2], t[3], t[0]
	subWord(t)
	t[0] ^= rcon[i]
}

func subWord(t *[4]byte) {
	for i := range t {
		t[i] = sbox[t[i]]
	}
}

// nextRoundKey builds a round key one column at a time. Column j is column j
// of back XOR the running word t, and t then becomes that column. On return
// t holds the last column of the new key.
func nextRoundKey(back *Matrix, t *[4]byte) Matrix {
	var m Matrix
	for j := range 4 {
		col := back.Column(j)
		for r := range col {
			col[r] ^= t[r]
		}
		m.SetColumn(col, j)
		*t = col
	}
	return m
}
