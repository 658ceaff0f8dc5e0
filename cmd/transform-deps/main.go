package main

import "transform-deps/internal/cli"

func main() {
	cli.Execute()
}
