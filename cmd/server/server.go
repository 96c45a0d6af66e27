// Package main is the entry point of the commerce-core application.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"commerce-core/internal"
)

func main() {
	internal.Init()
}
