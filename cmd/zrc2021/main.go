package main

import (
	"fmt"
	"os"

	"github.com/zerospeech/zrc2021/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
