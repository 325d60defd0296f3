package main

import "github.com/LENAX/autotune/pkg/cli/cmd"

func main() {
	cmd.Execute()
}
