package main

import (
	"fmt"
	"os"

	ksync "github.com/arthur-debert/ksync/cmd/ksync"
	"github.com/arthur-debert/ksync/pkg/style"
)

func main() {
	rootCmd := ksync.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
