package fileenc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/xmdhs/go-rijndael/crypto"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		mode crypto.Mode
		op   Op
		want string
	}{
		{mode: crypto.ModeECB, op: OpEncrypt, want: "msg.txt_ciphertext"},
		{mode: crypto.ModeECB, op: OpDecrypt, want: "msg.txt_plaintext"},
		{mode: crypto.ModeCBC, op: OpEncrypt, want: "msg.txt_cbc_ciphertext"},
		{mode: crypto.ModeCBC, op: OpDecrypt, want: "msg.txt_cbc_plaintext"},
	}
	for _, tt := range tests {
		if got := OutputPath("msg.txt", tt.mode, tt.op); got != tt.want {
			t.Fatalf("OutputPath(%v, %v) = %q, want %q", tt.mode, tt.op, got, tt.want)
		}
	}
}

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFileRoundTrip(t *testing.T) {
	plain := []byte("The quick brown fox jumps over the lazy dog, twice over.")
	keys := map[string][]byte{
		"aes-128": []byte("YELLOW SUBMARINE"),
		"aes-256": []byte("YELLOW SUBMARINEYELLOW SUBMARINE"),
	}
	for name, key := range keys {
		for _, mode := range []crypto.Mode{crypto.ModeECB, crypto.ModeCBC} {
			t.Run(name+"-"+mode.String(), func(t *testing.T) {
				ctx := context.Background()
				input := writeInput(t, plain)

				enc, err := EncryptFile(ctx, Options{Input: input, Mode: mode, Key: key})
				if err != nil {
					t.Fatalf("EncryptFile error = %v", err)
				}
				if enc.Output != OutputPath(input, mode, OpEncrypt) {
					t.Fatalf("output = %q", enc.Output)
				}
				if enc.OutBytes != 64 || enc.InBytes != len(plain) {
					t.Fatalf("result = %+v", enc)
				}

				dec, err := DecryptFile(ctx, Options{Input: enc.Output, Mode: mode, Key: key})
				if err != nil {
					t.Fatalf("DecryptFile error = %v", err)
				}
				got, err := os.ReadFile(dec.Output)
				if err != nil {
					t.Fatal(err)
				}
				// Padding stays in the decrypted file unless asked otherwise.
				if !bytes.Equal(got, crypto.PKCS7Pad(plain, crypto.BlockSize)) {
					t.Fatalf("decrypted file = %q", got)
				}

				stripped, err := DecryptFile(ctx, Options{Input: enc.Output, Output: dec.Output + ".stripped", Mode: mode, Key: key, StripPadding: true})
				if err != nil {
					t.Fatalf("DecryptFile(StripPadding) error = %v", err)
				}
				got, _ = os.ReadFile(stripped.Output)
				if !bytes.Equal(got, plain) {
					t.Fatalf("stripped file = %q, want %q", got, plain)
				}
			})
		}
	}
}

func TestKnownAnswerFile(t *testing.T) {
	key := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}
	plain := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	want := []byte{0x69, 0xc4, 0xe0, 0xd8, 0x6a, 0x7b, 0x04, 0x30, 0xd8, 0xcd, 0xb7, 0x80, 0x70, 0xb4, 0xc5, 0x5a}

	res, err := EncryptFile(context.Background(), Options{Input: writeInput(t, plain), Mode: crypto.ModeECB, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile error = %v", err)
	}
	got, _ := os.ReadFile(res.Output)
	if !bytes.Equal(got[:16], want) {
		t.Fatalf("first block = %x, want %x", got[:16], want)
	}
}

func TestFailuresLeaveNoOutput(t *testing.T) {
	key := []byte("YELLOW SUBMARINE")
	tests := []struct {
		name       string
		op         Op
		data       []byte
		key        []byte
		mode       crypto.Mode
		wantErr    error
		wantConfig bool
	}{
		{name: "encrypt short key", op: OpEncrypt, data: []byte("x"), key: []byte("short"), mode: crypto.ModeECB, wantErr: crypto.ErrInvalidKeySize, wantConfig: true},
		{name: "encrypt 192-bit key", op: OpEncrypt, data: []byte("x"), key: make([]byte, 24), mode: crypto.ModeCBC, wantErr: crypto.ErrInvalidKeySize, wantConfig: true},
		{name: "decrypt 192-bit key", op: OpDecrypt, data: make([]byte, 16), key: make([]byte, 24), mode: crypto.ModeCBC, wantErr: crypto.ErrUnsupportedKeySize, wantConfig: true},
		{name: "bad mode", op: OpEncrypt, data: []byte("x"), key: key, mode: crypto.Mode(9), wantErr: crypto.ErrUnknownMode, wantConfig: true},
		{name: "truncated ciphertext", op: OpDecrypt, data: make([]byte, 20), key: key, mode: crypto.ModeCBC, wantErr: crypto.ErrTruncatedCiphertext},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, tt.data)
			opts := Options{Input: input, Mode: tt.mode, Key: tt.key}
			var err error
			if tt.op == OpEncrypt {
				_, err = EncryptFile(context.Background(), opts)
			} else {
				_, err = DecryptFile(context.Background(), opts)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if crypto.IsConfigError(err) != tt.wantConfig {
				t.Fatalf("IsConfigError(%v) = %v, want %v", err, !tt.wantConfig, tt.wantConfig)
			}
			if names := dirEntries(t, filepath.Dir(input)); len(names) != 1 {
				t.Fatalf("directory holds %v, want only the input", names)
			}
		})
	}
}

func TestMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := EncryptFile(context.Background(), Options{Input: filepath.Join(dir, "nope"), Mode: crypto.ModeECB, Key: []byte("YELLOW SUBMARINE")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("EncryptFile(missing) error = %v, want ErrNotExist", err)
	}
	if crypto.IsConfigError(err) {
		t.Fatalf("missing input reported as configuration error")
	}
	if names := dirEntries(t, dir); len(names) != 0 {
		t.Fatalf("directory holds %v, want nothing", names)
	}
}

func TestCanceledContextWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := writeInput(t, []byte("data"))
	if _, err := EncryptFile(ctx, Options{Input: input, Mode: crypto.ModeCBC, Key: []byte("YELLOW SUBMARINE")}); !errors.Is(err, context.Canceled) {
		t.Fatalf("EncryptFile error = %v, want context.Canceled", err)
	}
	if names := dirEntries(t, filepath.Dir(input)); len(names) != 1 {
		t.Fatalf("directory holds %v, want only the input", names)
	}
}

func TestOutputIsOwnerOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	key := []byte("YELLOW SUBMARINE")
	enc, err := EncryptFile(context.Background(), Options{Input: writeInput(t, []byte("secret")), Mode: crypto.ModeCBC, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile error = %v", err)
	}
	dec, err := DecryptFile(context.Background(), Options{Input: enc.Output, Mode: crypto.ModeCBC, Key: key})
	if err != nil {
		t.Fatalf("DecryptFile error = %v", err)
	}
	for _, path := range []string{enc.Output, dec.Output} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			t.Fatalf("%s has mode %v, want no group or other access", filepath.Base(path), perm)
		}
	}
}
