package main

import "github.com/crisrui7/hk-insurance-dividend/src/cli"

func main() {
	cli.Execute()
}
