package common

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR        OCRConfig
	Dispatch   DispatchConfig
	Validation ValidateConfig
	Export     ExportConfig
}

// OCRConfig holds recognition-engine configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	OEM         int // 1 = LSTM; 0 to use the engine default
	CallTimeout time.Duration
	ScratchDir  string // temp artifacts for subprocess calls; "" -> os.TempDir
}

// DispatchConfig holds scheduler configuration
type DispatchConfig struct {
	Workers int // bounded pool size for the subprocess strategy
}

// ValidateConfig holds record acceptance configuration
type ValidateConfig struct {
	Strict        bool
	RequireSerial bool // required-field policy: serial instead of EPIC
}

// ExportConfig holds output configuration
type ExportConfig struct {
	PatternTablePath string // optional JSON override of the field-pattern table
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			OEM:         getEnvAsInt("TESSERACT_OEM", 1),
			CallTimeout: getEnvAsDuration("OCR_CALL_TIMEOUT", 10*time.Second),
			ScratchDir:  getEnv("OCR_SCRATCH_DIR", ""),
		},
		Dispatch: DispatchConfig{
			Workers: getEnvAsInt("OCR_WORKERS", runtime.NumCPU()),
		},
		Validation: ValidateConfig{
			Strict:        getEnvAsBool("VALIDATE_STRICT", false),
			RequireSerial: getEnvAsBool("VALIDATE_REQUIRE_SERIAL", false),
		},
		Export: ExportConfig{
			PatternTablePath: getEnv("PATTERN_TABLE", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.Tesseract == "" {
		return NewAppError("CONFIG_ERROR", "TESSERACT_BIN must not be empty", ErrInvalidInput)
	}
	if c.Dispatch.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "OCR_WORKERS must be >= 1", ErrInvalidInput)
	}
	if c.OCR.CallTimeout <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_CALL_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
