package main

import (
	"github.com/mchmarny/pawpair/pkg/cli"
)

func main() {
	cli.Execute()
}
