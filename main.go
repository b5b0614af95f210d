package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/app"
)

func main() {
	log.SetLevel(logLevel())

	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}

// logLevel reads LOG_LEVEL from the environment, defaulting to info.
func logLevel() log.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", raw, err)
	}
	return level
}
