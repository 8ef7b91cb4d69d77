package main

import "github.com/threeasure/fomodash/cmd"

func main() {
	cmd.Execute()
}
