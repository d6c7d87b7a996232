package main

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// promptKey reads a key from the terminal without echo. When confirm is set
// the key must be typed twice.
func promptKey(confirm bool) ([]byte, error) {
	in := os.Stdin
	if !term.IsTerminal(int(in.Fd())) {
		return nil, errors.New("no key given and stdin is not a terminal; use -key, -key-hex or RIJNDAEL_KEY")
	}
	fmt.Fprint(os.Stderr, "Enter key (16 or 32 bytes): ")
	k1, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(k1) == 0 {
		return nil, errors.New("empty key is not allowed")
	}
	if confirm {
		fmt.Fprint(os.Stderr, "Confirm key: ")
		k2, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			zeroize(k1)
			return nil, fmt.Errorf("failed to read key confirmation: %w", err)
		}
		match := subtle.ConstantTimeCompare(k1, k2) == 1
		zeroize(k2)
		if !match {
			zeroize(k1)
			return nil, errors.New("keys do not match")
		}
	}
	return k1, nil
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
