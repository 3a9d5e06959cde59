package main

import "github.com/oshokin/campaign-clock/cmd/campaign-clock/cmd"

func main() {
	cmd.Execute()
}
