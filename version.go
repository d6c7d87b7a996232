package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"
)

var version = "dev"

// hardwareAES reports whether the host CPU has AES instructions. The cipher
// here never uses them; the value is printed for comparison with crypto/aes.
func hardwareAES() bool {
	return cpu.X86.HasAES || cpu.ARM64.HasAES || cpu.S390X.HasAES
}

func printVersion() {
	fmt.Printf("go-rijndael %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("hardware AES: %t\n", hardwareAES())
}
