// cmd/pixeldriver/main.go
package main

import "github.com/tamzrod/udp-pixel-driver/cmd/pixeldriver/commands"

func main() {
	commands.Execute()
}
