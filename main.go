package main

import "beatstore/cmd"

func main() {
	cmd.Execute()
}
