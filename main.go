package main

import (
	"fmt"
	"os"

	"bujichang/spending/cmd/classify"
	"bujichang/spending/cmd/load"
	"bujichang/spending/cmd/months"
	"bujichang/spending/cmd/root"
	"bujichang/spending/cmd/suggest"
	"bujichang/spending/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(months.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
