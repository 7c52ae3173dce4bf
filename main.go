package main

import "github.com/statnotes/youthstat/cmd"

func main() {
	cmd.Execute()
}
