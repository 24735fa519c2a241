package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", "must be a valid TCP port"})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{"DB_HOST", "is required for postgres"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "is required for postgres"})
		}
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_USER", "is required for postgres"})
		}
		// Passwordless local databases are fine, deployed ones are not
		if cfg.DBPassword == "" && (env == Production || env == CI) {
			errs = append(errs, ValidationError{"DB_PASSWORD", fmt.Sprintf("db_password is required in %s", env)})
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.ImageStorage {
	case StorageLocal:
		if cfg.UploadDir == "" {
			errs = append(errs, ValidationError{"UPLOAD_DIR", "is required for local image storage"})
		}
		if !strings.HasPrefix(cfg.UploadsPrefix, "/") {
			errs = append(errs, ValidationError{"UPLOADS_PREFIX", "must start with /"})
		}
	case StorageS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required for s3 image storage"})
		}
	default:
		errs = append(errs, ValidationError{"IMAGE_STORAGE", fmt.Sprintf("unsupported backend %q", cfg.ImageStorage)})
	}

	if cfg.OrderTTL <= 0 {
		errs = append(errs, ValidationError{"ORDER_TTL", "must be a positive duration"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
