package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"TESSERACT_BIN", "TESSERACT_OEM", "OCR_CALL_TIMEOUT",
		"OCR_WORKERS", "VALIDATE_STRICT", "VALIDATE_REQUIRE_SERIAL",
	} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig()

	if cfg.OCR.Tesseract != "tesseract" {
		t.Errorf("tesseract = %q", cfg.OCR.Tesseract)
	}
	if cfg.OCR.OEM != 1 {
		t.Errorf("oem = %d", cfg.OCR.OEM)
	}
	if cfg.OCR.CallTimeout != 10*time.Second {
		t.Errorf("call timeout = %v", cfg.OCR.CallTimeout)
	}
	if cfg.Dispatch.Workers < 1 {
		t.Errorf("workers = %d", cfg.Dispatch.Workers)
	}
	if cfg.Validation.Strict || cfg.Validation.RequireSerial {
		t.Errorf("validation defaults: %+v", cfg.Validation)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TESSERACT_BIN", "/opt/tesseract/bin/tesseract")
	t.Setenv("TESSERACT_OEM", "3")
	t.Setenv("OCR_CALL_TIMEOUT", "30s")
	t.Setenv("OCR_WORKERS", "4")
	t.Setenv("VALIDATE_STRICT", "true")
	t.Setenv("VALIDATE_REQUIRE_SERIAL", "true")

	cfg := LoadConfig()
	if cfg.OCR.Tesseract != "/opt/tesseract/bin/tesseract" {
		t.Errorf("tesseract = %q", cfg.OCR.Tesseract)
	}
	if cfg.OCR.OEM != 3 {
		t.Errorf("oem = %d", cfg.OCR.OEM)
	}
	if cfg.OCR.CallTimeout != 30*time.Second {
		t.Errorf("call timeout = %v", cfg.OCR.CallTimeout)
	}
	if cfg.Dispatch.Workers != 4 {
		t.Errorf("workers = %d", cfg.Dispatch.Workers)
	}
	if !cfg.Validation.Strict || !cfg.Validation.RequireSerial {
		t.Errorf("validation settings: %+v", cfg.Validation)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty tesseract", func(c *Config) { c.OCR.Tesseract = "" }},
		{"zero workers", func(c *Config) { c.Dispatch.Workers = 0 }},
		{"zero timeout", func(c *Config) { c.OCR.CallTimeout = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := LoadConfig()
			c.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
