package main

import "retirecast/internal/cmd"

func main() {
	cmd.Execute()
}
