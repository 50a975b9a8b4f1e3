package main

import "github.com/KaramelBytes/amrreport-cli/cmd"

func main() {
	cmd.Execute()
}
