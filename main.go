package main

import "github.com/trezcool/classbook/apps/cli"

func main() {
	cli.Execute()
}
