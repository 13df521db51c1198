package main

import "fx-valuation/internal/cli"

func main() {
	cli.Execute()
}
