package main

import "github.com/KaramelBytes/libinsight-cli/cmd"

func main() {
	cmd.Execute()
}
