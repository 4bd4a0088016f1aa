package main

import "github.com/Enhisir/android-manager/cmd"

func main() {
	cmd.Execute()
}
