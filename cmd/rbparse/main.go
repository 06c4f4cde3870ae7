package main

import (
	"os"

	"github.com/ruby/ruby-sub004/cmd/rbparse/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
