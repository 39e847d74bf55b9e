/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/sifdb/cmd/sif/cmd"
)

func main() {
	cmd.Execute()
}
