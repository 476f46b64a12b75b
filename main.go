package main

import (
	"github.com/foomo/wca/cmd"
)

func main() {
	cmd.Execute()
}
