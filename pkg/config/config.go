package config

import "os"

type Config struct {
	Port      string
	Env       string
	MongoURI  string
	JWTSecret string
}

// Load reads the configuration from the environment. JWTSecret has no
// default; an empty value must abort startup before any route is
// served.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8000"),
		Env:       getEnv("ENV", "development"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017/blog-api"),
		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
