// Package config resolves runtime settings from the process environment.
//
// Outside production the environment is seeded from an optional .env file.
// With GO_ENV=production the values are pulled from AWS SSM Parameter Store
// and exported as environment variables before being read.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	envVarsPrefix = "/gratitude/prod/"
	ssmRegion     = "us-east-2"

	defaultHTTPAddr     = ":5000"
	defaultDatabasePath = "gratitude.db"
	defaultLogLevel     = "INFO"
)

type Config struct {
	Env          string
	HTTPAddr     string
	DatabasePath string
	LogLevel     log.Lvl
	S3Bucket     string
	S3Region     string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load fills the environment from its source and reads the settings out of it.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		Env:          os.Getenv("GO_ENV"),
		HTTPAddr:     getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabasePath: getEnv("DATABASE_PATH", defaultDatabasePath),
		LogLevel:     ParseLevel(getEnv("LOG_LEVEL", defaultLogLevel)),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		S3Region:     os.Getenv("AWS_S3_REGION"),
	}
}

// ParseLevel maps a level name onto gommon's levels, falling back to INFO.
func ParseLevel(name string) log.Lvl {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}

// loadDotEnv is a no-op when the file does not exist. Variables already set
// in the environment take precedence.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ssmRegion))
	if err != nil {
		return err
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		return err
	}

	prefixLength := len(envVarsPrefix)
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
			return err
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
