package main

import "fikus/internal/cli"

func main() {
	cli.Execute()
}
