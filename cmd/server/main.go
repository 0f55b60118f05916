// Package main implements the planet-api command: an HTTP/JSON service for
// users, groups and their memberships, plus schema migration tooling.
package main

import "os"

func main() {
	os.Exit(execute())
}
