package main

import "github3/internal/cmd"

func main() {
	cmd.Execute()
}
