// Command tether checks, from outside any proxy, that the genuine system
// libraries a proxy forwards to can be resolved.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
