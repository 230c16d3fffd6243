//go:build tinygo

package main

import (
	"abacus/app"
	"abacus/hal"
)

func main() {
	app.Run(hal.New())
}
