package main

import "github.com/mcoot/onboarding/internal/cli"

func main() {
	cli.Execute()
}
