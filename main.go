// File: rapstation/main.go
package main

import "rapstation/cmd"

func main() {
	cmd.Execute()
}
