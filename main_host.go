//go:build !tinygo

package main

import "abacus/internal/cli"

func main() {
	cli.Execute()
}
