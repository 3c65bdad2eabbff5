// Package main implements the hashdrbg executable.
package main

import (
	"github.com/aerius-labs/hash-drbg-go/cmd/hashdrbg/cmd"
)

func main() {
	cmd.Execute()
}
