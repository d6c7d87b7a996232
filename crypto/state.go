package crypto

import (
	"fmt"
	"io"
)

// State is the block currently being enciphered or deciphered. It wraps a
// single Matrix and adds the Rijndael round transforms.
type State struct {
	m Matrix
}

// NewState loads the first 16 bytes of block into a new State.
func NewState(block []byte) (*State, error) {
	m, err := LoadMatrix(block)
	if err != nil {
		return nil, err
	}
	return &State{m: m}, nil
}

// Matrix returns a copy of the current state.
func (s *State) Matrix() Matrix {
	return s.m
}

// SubBytes replaces every byte with its sbox image.
func (s *State) SubBytes() {
	for i := range s.m {
		s.m[i] = sbox[s.m[i]]
	}
}

// InvSubBytes undoes SubBytes.
func (s *State) InvSubBytes() {
	for i := range s.m {
		s.m[i] = rsbox[s.m[i]]
	}
}

// ShiftRows rotates row r left by r positions.
func (s *State) ShiftRows() {
	m := &s.m
	m[1], m[5], m[9], m[13] = m[5], m[9], m[13], m[1]
	m[2], m[6], m[10], m[14] = m[10], m[14], m[2], m[6]
	m[3], m[7], m[11], m[15] = m[15], m[3], m[7], m[11]
}

// InvShiftRows rotates row r right by r positions.
func (s *State) InvShiftRows() {
	m := &s.m
	m[1], m[5], m[9], m[13] = m[13], m[1], m[5], m[9]
	m[2], m[6], m[10], m[14] = m[10], m[14], m[2], m[6]
	m[3], m[7], m[11], m[15] = m[7], m[11], m[15], m[3]
}

// MixColumns multiplies every column by the circulant matrix
// [2 3 1 1; 1 2 3 1; 1 1 2 3; 3 1 1 2] over GF(2^8).
func (s *State) MixColumns() {
	for c := range 4 {
		a := s.m.Column(c)
		s.m.SetColumn([4]byte{
			mul2[a[0]] ^ mul3[a[1]] ^ a[2] ^ a[3],
			a[0] ^ mul2[a[1]] ^ mul3[a[2]] ^ a[3],
			a[0] ^ a[1] ^ mul2[a[2]] ^ mul3[a[3]],
			mul3[a[0]] ^ a[1] ^ a[2] ^ mul2[a[3]],
		}, c)
	}
}

// InvMixColumns multiplies every column by
// [14 11 13 9; 9 14 11 13; 13 9 14 11; 11 13 9 14] over GF(2^8).
func (s *State) InvMixColumns() {
	for c := range 4 {
		a := s.m.Column(c)
		s.m.SetColumn([4]byte{
			mul14[a[0]] ^ mul11[a[1]] ^ mul13[a[2]] ^ mul9[a[3]],
			mul9[a[0]] ^ mul14[a[1]] ^ mul11[a[2]] ^ mul13[a[3]],
			mul13[a[0]] ^ mul9[a[1]] ^ mul14[a[2]] ^ mul11[a[3]],
			mul11[a[0]] ^ mul13[a[1]] ^ mul9[a[2]] ^ mul14[a[3]],
		}, c)
	}
}

// AddRoundKey XORs roundKey into the state.
func (s *State) AddRoundKey(roundKey *Matrix) {
	s.m.Xor(roundKey)
}

// AppendBytes appends the 16 state bytes to dst in load order, column by
// column, so loading a block and appending it again yields the same bytes.
func (s *State) AppendBytes(dst []byte) []byte {
	return append(dst, s.m[:]...)
}

// Serialize writes the 16 state bytes to w in the order AppendBytes uses.
func (s *State) Serialize(w io.Writer) error {
	if _, err := w.Write(s.m[:]); err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}
	return nil
}
