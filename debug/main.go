package main

import (
	"github.com/sirupsen/logrus"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/config"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/server"
)

func main() {
	cnf, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	if cnf.Production() {
		logrus.Fatal("the debug server must not run in production")
	}

	// log every call and every sql statement
	cnf.Log.Level = "debug"
	cnf.DB.Debug = true

	if err := config.SetupLogging(cnf.Log); err != nil {
		logrus.Fatalf("error setting up logging: %v", err)
	}

	if err := server.NewServer(cnf).Start(); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}
