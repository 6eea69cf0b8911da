package main

import "sportify/cmd/server"

func main() {
	server.Init()
	server.Run()
}
