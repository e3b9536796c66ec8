package main

import "adfbuild/cmd"

func main() {
	cmd.Execute()
}
