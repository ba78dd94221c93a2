package main

import "github.com/pfrederiksen/usps-zipcodes/internal/cli"

func main() {
	cli.Execute()
}
