// Package fileenc applies the block cipher modes to whole files.
package fileenc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/xmdhs/go-rijndael/crypto"
	"github.com/xmdhs/go-rijndael/logger"
)

// Op is the direction of a file operation.
type Op int

const (
	OpEncrypt Op = iota
	OpDecrypt
)

func (o Op) String() string {
	if o == OpDecrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Options describes one file operation.
type Options struct {
	Input string
	// Output defaults to OutputPath(Input, Mode, op) when empty.
	Output string
	Mode   crypto.Mode
	Key    []byte
	// StripPadding removes PKCS7 padding after decryption. Off by default:
	// decrypted files keep their trailing pad bytes.
	StripPadding bool
}

// Result reports what an operation produced.
type Result struct {
	Output   string
	InBytes  int
	OutBytes int
}

// OutputPath derives the output file name by appending the suffix for mode
// and op to input.
func OutputPath(input string, mode crypto.Mode, op Op) string {
	suffix := "_ciphertext"
	if op == OpDecrypt {
		suffix = "_plaintext"
	}
	if mode == crypto.ModeCBC {
		suffix = "_cbc" + suffix
	}
	return input + suffix
}

// EncryptFile pads and encrypts opts.Input into the output file.
func EncryptFile(ctx context.Context, opts Options) (*Result, error) {
	return run(ctx, OpEncrypt, opts)
}

// DecryptFile decrypts opts.Input into the output file.
func DecryptFile(ctx context.Context, opts Options) (*Result, error) {
	return run(ctx, OpDecrypt, opts)
}

func run(ctx context.Context, op Op, opts Options) (*Result, error) {
	ctx = logger.WithOperation(ctx)
	start := time.Now()

	// Key and mode are checked here, before the input is read.
	var engine *crypto.Engine
	var err error
	if op == OpEncrypt {
		engine, err = crypto.NewEncrypter(opts.Mode, opts.Key)
	} else {
		engine, err = crypto.NewDecrypter(opts.Mode, opts.Key)
	}
	if err != nil {
		return nil, err
	}
	output := opts.Output
	if output == "" {
		output = OutputPath(opts.Input, opts.Mode, op)
	}

	logger.Info(ctx, "File operation started",
		slog.String("op", op.String()),
		slog.String("mode", opts.Mode.String()),
		slog.String("input", opts.Input),
		slog.Int("key_bits", len(opts.Key)*8))

	in, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	logger.Debug(ctx, "Input read", slog.Int("bytes", len(in)))

	out, err := engine.Apply(in)
	if err != nil {
		return nil, err
	}
	if op == OpDecrypt && opts.StripPadding {
		if out, err = crypto.PKCS7Unpad(out); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := writeFile(output, out); err != nil {
		return nil, err
	}

	logger.Info(ctx, "File operation finished",
		slog.String("output", output),
		slog.Int("in_bytes", len(in)),
		slog.Int("out_bytes", len(out)),
		slog.Duration("elapsed", time.Since(start)))
	return &Result{Output: output, InBytes: len(in), OutBytes: len(out)}, nil
}

// writeFile writes data to a uniquely named file next to path and renames it
// into place, so a failed operation never leaves a partial output behind.
// The file is readable by its owner only.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write output file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot move output into place: %w", err)
	}
	return nil
}
