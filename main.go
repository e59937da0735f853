package main

import "github.com/amady/vitrine/internal/cli"

func main() {
	cli.Run()
}
