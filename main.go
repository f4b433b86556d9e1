package main

import "github.com/deploymenttheory/go-assetprobe/cmd"

func main() {
	cmd.Execute()
}
