package main

import (
	"github.com/pbglang/pbg/pkg/cmd"
)

func main() {
	cmd.Execute()
}
