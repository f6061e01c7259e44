package main

// @title Garmin Gateway API
// @version 1.0
// @description Personal Garmin Connect health data over a small JSON API.

// @host localhost:3011
// @BasePath /
// @schemes http
import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
