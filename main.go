package main

import (
	"github.com/foomo/mockserver/cmd"
)

func main() {
	cmd.Execute()
}
