package main

import "github.com/vrk-kpa/ptv-releases-sub014/cmd"

func main() {
	cmd.Execute()
}
