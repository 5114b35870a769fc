package main

import "github.com/thanhdo/marketly/cmd/server"

func main() {
	server.NewServer().Run()
}
