package main

import "github.com/lepinkainen/binder/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
