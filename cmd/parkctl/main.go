package main

import "github.com/example/parkctl/cmd"

func main() {
	cmd.Execute()
}
