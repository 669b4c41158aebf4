package main

import "github.com/vesper-lang/vesper/cmd"

func main() {
	_ = cmd.App().Execute()
}
