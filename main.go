package main

import (
	"github.com/sepguard/sepguard-server/config"
	"github.com/sepguard/sepguard-server/route"
)

func main() {
	config.SetupAll()

	e := route.NewHandler()

	e.Logger.Fatal(e.Start(config.ServerConfig().Port))
}
