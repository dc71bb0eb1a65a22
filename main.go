package main

import "github.com/christosgalano/kqlctl/cmd"

func main() {
	cmd.Execute()
}
