package cliparse

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "env-session-secret")
	t.Setenv("DEVICE_ID_SECRET", "env-device-secret")
}

func TestParseFlagsDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.Port != 3319 {
		t.Errorf("Port = %d, want 3319", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:arena.db" {
		t.Errorf("DatabaseURL = %q, want file:arena.db", cfg.DatabaseURL)
	}
	if !cfg.SuperAdminExclusive {
		t.Error("SuperAdminExclusive should default to true")
	}
	if cfg.SecureCookies {
		t.Error("SecureCookies should default to false")
	}
}

func TestParseFlagsCLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "sqlite")

	cfg, err := ParseFlags([]string{"-p", "4000", "-t", "postgres", "-d", "postgres://localhost/arena"})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000 (flag beats env)", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://env/arena")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://env/arena" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SessionSecret != "env-session-secret" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
	if cfg.DeviceIDSecret != "env-device-secret" {
		t.Errorf("DeviceIDSecret = %q", cfg.DeviceIDSecret)
	}
}

func TestParseFlagsValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "invalid port",
			env: map[string]string{
				"SESSION_SECRET":   "s",
				"DEVICE_ID_SECRET": "d",
				"PORT":             "not-a-number",
			},
		},
		{
			name: "bad database type",
			env: map[string]string{
				"SESSION_SECRET":   "s",
				"DEVICE_ID_SECRET": "d",
			},
			args: []string{"-t", "mysql"},
		},
		{
			name: "postgres requires url",
			env: map[string]string{
				"SESSION_SECRET":   "s",
				"DEVICE_ID_SECRET": "d",
				"DATABASE_TYPE":    "postgres",
			},
		},
		{
			name: "missing session secret",
			env: map[string]string{
				"DEVICE_ID_SECRET": "d",
			},
		},
		{
			name: "missing device secret",
			env: map[string]string{
				"SESSION_SECRET": "s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear the required vars, then set the case's environment.
			t.Setenv("SESSION_SECRET", "")
			t.Setenv("DEVICE_ID_SECRET", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("DATABASE_TYPE", "")
			t.Setenv("PORT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("ParseFlags() expected an error")
			}
		})
	}
}

func TestParseFlagsPasswordsOptional(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("SUPER_ADMIN_PASSWORD", "")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.AdminPassword != "" || cfg.SuperAdminPassword != "" {
		t.Error("passwords should be empty when unset")
	}

	t.Setenv("ADMIN_PASSWORD", "a-pw")
	t.Setenv("SUPER_ADMIN_PASSWORD", "s-pw")
	cfg, err = ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.AdminPassword != "a-pw" || cfg.SuperAdminPassword != "s-pw" {
		t.Error("passwords not read from environment")
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{"unset uses default true", "", true, true},
		{"unset uses default false", "", false, false},
		{"explicit false", "false", true, false},
		{"explicit true", "true", false, true},
		{"numeric one", "1", false, true},
		{"garbage uses default", "banana", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL_KEY", tt.value)
			if got := envBool("TEST_BOOL_KEY", tt.def); got != tt.want {
				t.Errorf("envBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseFlagsSuperAdminExclusiveOff(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUPER_ADMIN_EXCLUSIVE", "false")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.SuperAdminExclusive {
		t.Error("SUPER_ADMIN_EXCLUSIVE=false not honored")
	}
}
