package main

import "github.com/bz888/gemchat/cmd"

func main() {
	cmd.Execute()
}
