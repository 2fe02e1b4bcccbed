package main

import "github.com/chriserin/bspec/internal/cli"

func main() {
	cli.Execute()
}
