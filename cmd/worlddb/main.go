// Package main provides the worlddb CLI application.
// worlddb manages the lifecycle of a geographic reference database.
package main

import "github.com/worldable/worlddb/cmd"

func main() {
	cmd.Execute()
}
