package main

import "github.com/alexiusacademia/gopcr/cmd"

func main() {
	cmd.Execute()
}
