package main

import "github.com/brogergvhs/galleryd/cmd"

func main() {
	cmd.Execute()
}
