package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/xmdhs/go-rijndael/config"
	"github.com/xmdhs/go-rijndael/crypto"
	"github.com/xmdhs/go-rijndael/fileenc"
	"github.com/xmdhs/go-rijndael/logger"
)

func main() {
	// Sub-commands.
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encrypt":
		os.Exit(runFile(fileenc.OpEncrypt, os.Args[2:]))
	case "decrypt":
		os.Exit(runFile(fileenc.OpDecrypt, os.Args[2:]))
	case "version":
		printVersion()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("go-rijndael: AES-128/256 file encryption (ECB, CBC)")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go-rijndael encrypt [options] <file>    Encrypt a file")
	fmt.Println("  go-rijndael decrypt [options] <file>    Decrypt a file")
	fmt.Println("  go-rijndael version                     Print version information")
	fmt.Println()
	fmt.Println("Run 'go-rijndael encrypt -h' or 'go-rijndael decrypt -h' for details.")
}

// runFile handles both file sub-commands and returns the process exit code.
func runFile(op fileenc.Op, args []string) int {
	fs := flag.NewFlagSet(op.String(), flag.ExitOnError)
	input := fs.String("in", "", "Input file (or pass it as the first argument)")
	output := fs.String("out", "", "Output file (default: input path plus a mode suffix)")
	mode := fs.String("mode", "", "Block mode: ecb or cbc (default from config: cbc)")
	key := fs.String("key", "", "Key text, 16 or 32 bytes")
	keyHex := fs.String("key-hex", "", "Key as hex, 32 or 64 hex characters")
	configPath := fs.String("config", "", "Path to a YAML config file")
	logLevel := fs.String("log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	var unpad *bool
	if op == fileenc.OpDecrypt {
		unpad = fs.Bool("unpad", false, "Strip PKCS7 padding from the decrypted output")
	}

	fs.Parse(args)

	rest := fs.Args()
	if *input == "" && len(rest) > 0 {
		*input, rest = rest[0], rest[1:]
	}
	// Flags after the file name are not parsed; refuse them rather than
	// silently falling back to the config or the prompt.
	if len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments %q: flags must come before the input file\n", rest)
		fs.Usage()
		return 2
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing input file")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	// Flags that were given override the config.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "key":
			cfg.Key, cfg.KeyHex = *key, ""
		case "key-hex":
			cfg.Key, cfg.KeyHex = "", *keyHex
		case "log-level":
			cfg.LogLevel = *logLevel
		case "unpad":
			cfg.StripPadding = *unpad
		}
	})

	logger.Init(cfg.LogLevel)
	ctx := context.Background()

	blockMode, err := cfg.BlockMode()
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Invalid mode", slog.Any("error", err))
		return 1
	}
	keyBytes, err := cfg.KeyBytes()
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Invalid key", slog.Any("error", err))
		return 1
	}
	if keyBytes == nil {
		keyBytes, err = promptKey(op == fileenc.OpEncrypt)
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "No key", slog.Any("error", err))
			return 1
		}
	}
	defer zeroize(keyBytes)

	opts := fileenc.Options{
		Input:        *input,
		Output:       *output,
		Mode:         blockMode,
		Key:          keyBytes,
		StripPadding: cfg.StripPadding,
	}

	var res *fileenc.Result
	if op == fileenc.OpEncrypt {
		res, err = fileenc.EncryptFile(ctx, opts)
	} else {
		res, err = fileenc.DecryptFile(ctx, opts)
	}
	if err != nil {
		msg := "I/O error"
		if crypto.IsConfigError(err) {
			msg = "Configuration error"
		}
		logger.LogAttrs(ctx, slog.LevelError, msg, slog.String("op", op.String()), slog.Any("error", err))
		return 1
	}

	fmt.Println(res.Output)
	return 0
}
