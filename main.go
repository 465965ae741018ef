package main

import "github.com/andikarahman/hr-management/cmd"

func main() {
	cmd.Execute()
}
