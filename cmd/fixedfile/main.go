/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ledgerkit/fixedfile/cmd/fixedfile/cmd"
)

func main() {
	cmd.Execute()
}
