package main

type config struct {
	API       apiConfig       `yaml:"api"`
	Database  databaseConfig  `yaml:"database"`
	Auth      authConfig      `yaml:"auth"`
	Jaeger    jaegerConfig    `yaml:"jaeger"`
	Kafka     kafkaConfig     `yaml:"kafka"`
	RateLimit rateLimitConfig `yaml:"rateLimit"`
}

type apiConfig struct {
	Port int `yaml:"port"`
}

// databaseConfig selects the storage backend. An empty DSN runs the
// server on in-memory storage.
type databaseConfig struct {
	DSN string `yaml:"dsn"`
}

type authConfig struct {
	Secret     string `yaml:"secret"`
	TTLMinutes int    `yaml:"ttlMinutes"`
}

type jaegerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type kafkaConfig struct {
	Enabled bool   `yaml:"enabled"`
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

type rateLimitConfig struct {
	RPS   int `yaml:"rps"`
	Burst int `yaml:"burst"`
}
