package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	MeshProviderAddress    string
	MeshProviderAPIKey     string
	AuthSecret             string
	GenerationPollInterval time.Duration
	WorkerPoolSize         int
	ShutdownTimeout        time.Duration
	MaxGenerationsBatch    int

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	UploadsBucket      string
}

const (
	defaultRunAddress             = ":8080"
	defaultAuthSecret             = "change-me-in-production"
	defaultGenerationPollInterval = 5 * time.Second
	defaultWorkerPoolSize         = 4
	defaultShutdownTimeout        = 10 * time.Second
	defaultMaxGenerationsBatch    = 16
	defaultAWSRegion              = "us-east-1"
	defaultUploadsBucket          = "wardprints-uploads"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		MeshProviderAddress:    getString(lookup, "MESH_PROVIDER_ADDRESS", ""),
		MeshProviderAPIKey:     getString(lookup, "MESH_PROVIDER_API_KEY", ""),
		AuthSecret:             getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		GenerationPollInterval: getDuration(lookup, "GENERATION_POLL_INTERVAL", defaultGenerationPollInterval),
		WorkerPoolSize:         getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxGenerationsBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxGenerationsBatch),
		AWSRegion:              getString(lookup, "AWS_REGION", defaultAWSRegion),
		AWSAccessKeyID:         getString(lookup, "AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:     getString(lookup, "AWS_SECRET_ACCESS_KEY", ""),
		UploadsBucket:          getString(lookup, "UPLOADS_BUCKET", defaultUploadsBucket),
	}

	fs := flag.NewFlagSet("wardprints", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.GenerationPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.MeshProviderAddress, "m", cfg.MeshProviderAddress, "Mesh generation provider base URL")
	fs.StringVar(&cfg.MeshProviderAPIKey, "mesh-api-key", cfg.MeshProviderAPIKey, "Mesh generation provider API key")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent generation workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between generation polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxGenerationsBatch, "poll-batch", cfg.MaxGenerationsBatch, "Maximum generations per polling batch")
	fs.StringVar(&cfg.UploadsBucket, "uploads-bucket", cfg.UploadsBucket, "S3 bucket for uploaded source images")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GenerationPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxGenerationsBatch <= 0 {
		cfg.MaxGenerationsBatch = defaultMaxGenerationsBatch
	}

	if cfg.GenerationPollInterval <= 0 {
		cfg.GenerationPollInterval = defaultGenerationPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.MeshProviderAddress == "" {
		return nil, fmt.Errorf("mesh provider address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
