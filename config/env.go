package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// LoadENV loads .env when present and checks the variables the app
// cannot run without. PORT and MQTT_URL stay optional.
func LoadENV() error {
	_ = godotenv.Load()

	if os.Getenv("POSTGRESQL_URI") == "" {
		return errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}
	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("you must set your 'JWT_SECRET' environmental variable")
	}
	return nil
}
