package main

import "github.com/codecraft/employee-directory/cmd"

func main() {
	cmd.Execute()
}
