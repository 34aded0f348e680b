// cmd/endthought/main.go
//
// This is the entry point for the endthought CLI.
// All command wiring lives in internal/cli.

package main

import "github.com/kingrea/endthought/internal/cli"

func main() {
	cli.Execute()
}
