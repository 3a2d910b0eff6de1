package main

import "swnations/cmd"

func main() {
	cmd.Execute()
}
