package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	GeminiAPIKey string
	GeminiModel  string

	DocParserURL    string
	DocParserAPIKey string

	AuthURL     string
	AuthAnonKey string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             "9446",
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		GeminiModel:      "gemini-1.5-flash",
	}

	if v := os.Getenv("PORT"); len(v) != 0 {
		env.Port = v
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); len(v) != 0 {
		env.PostgresAddress = v
	}

	if v := os.Getenv("POSTGRES_PORT"); len(v) != 0 {
		env.PostgresPort = v
	}

	if v := os.Getenv("POSTGRES_DB"); len(v) != 0 {
		env.PostgresDB = v
	}

	if v := os.Getenv("POSTGRES_USERNAME"); len(v) != 0 {
		env.PostgresUsername = v
	}

	if v := os.Getenv("POSTGRES_PASSWORD"); len(v) != 0 {
		env.PostgresPassword = v
	}

	env.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if v := os.Getenv("GEMINI_MODEL"); len(v) != 0 {
		env.GeminiModel = v
	}

	env.DocParserURL = os.Getenv("DOC_PARSER_URL")
	env.DocParserAPIKey = os.Getenv("DOC_PARSER_API_KEY")

	env.AuthURL = os.Getenv("AUTH_URL")
	env.AuthAnonKey = os.Getenv("AUTH_ANON_KEY")

	return &env, nil
}

// PostgresConnString builds the lib/pq connection string from the
// individual settings.
func (c *Config) PostgresConnString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
