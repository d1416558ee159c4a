package main

import "toggl-sherpa/internal/cli"

func main() {
	cli.Execute()
}
