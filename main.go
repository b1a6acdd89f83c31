package main

import "github.com/devkit-cli/devkit/cmd"

func main() {
	cmd.Execute()
}
