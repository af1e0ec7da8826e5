package main

import (
	"github.com/finplan/finance-planner/cmd"
)

func main() {
	cmd.Execute()
}
