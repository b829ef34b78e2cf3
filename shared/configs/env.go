package configs

import (
	"os"

	"github.com/joho/godotenv"
)

type environment struct {
	FRONTEND_ORIGIN string
	JWT_KEY         []byte
	POSTGRES_URL    string
	GIN_MODE        string
	SNAPSHOT_PATH   string
	LOG_LEVEL       string
}

// Envs is read once at startup. A .env file in the working directory is
// loaded first, and it has to happen here rather than in main: package-level
// initializers across the tree run before main does.
var Envs = loadEnvironment()

func loadEnvironment() environment {
	godotenv.Load()
	return environment{
		FRONTEND_ORIGIN: os.Getenv("FRONTEND_ORIGIN"),
		JWT_KEY:         []byte(os.Getenv("JWT_KEY")),
		POSTGRES_URL:    os.Getenv("POSTGRES_URL"),
		GIN_MODE:        os.Getenv("GIN_MODE"),
		SNAPSHOT_PATH:   os.Getenv("SNAPSHOT_PATH"),
		LOG_LEVEL:       os.Getenv("LOG_LEVEL"),
	}
}
