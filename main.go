package main

import "github.com/stackaudit/stackaudit/cmd/stackaudit"

func main() { stackaudit.Execute() }
