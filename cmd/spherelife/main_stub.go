//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of sphere-ca requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/spherelife` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a terminal view use ./cmd/spherelife-tui; for batch runs use ./cmd/spherelife-run.")
	os.Exit(2)
}
