package main

import "kjob/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
