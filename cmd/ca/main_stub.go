//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

// Without the ebiten tag there is no window backend, so point the user at the
// tagged build or the terminal front-end instead.
func main() {
	fmt.Fprintln(os.Stderr, "sandfall: this binary was built without window support.")
	fmt.Fprintln(os.Stderr, "  window:   go run -tags ebiten ./cmd/ca")
	fmt.Fprintln(os.Stderr, "  terminal: go run ./cmd/sandterm")
	os.Exit(2)
}
