package main

import "github.com/mordilloSan/appsettings/webserver/cmd"

func main() {
	cmd.StartServer()
}
