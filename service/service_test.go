package service

import (
	"os"

	"github.com/sepguard/sepguard-server/config"
)

func init() {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()
}
