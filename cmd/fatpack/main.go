package main

import "fatpack/internal/cli"

func main() {
	cli.Execute()
}
