// Command legacyrec encodes, decodes and compares single legacy record
// fields, and keeps record images in a local store.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
