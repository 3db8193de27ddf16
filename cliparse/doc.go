// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DatabaseURL: Connection string (required for postgres, defaults to
    file:arena.db for sqlite)
  - SessionSecret: Secret for session token signing (required)
  - DeviceIDSecret: Secret for device ID hashing (required)
  - AdminPassword, SuperAdminPassword: Admin login secrets (optional)
  - SuperAdminExclusive: One super-admin at a time (default: true)
  - SecureCookies: Set the Secure cookie attribute (default: false)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-session-secret  Session signing secret
	-device-secret   Device ID hashing secret

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	SESSION_SECRET       → -session-secret
	DEVICE_ID_SECRET     → -device-secret
	ADMIN_PASSWORD
	SUPER_ADMIN_PASSWORD
	SUPER_ADMIN_EXCLUSIVE
	SECURE_COOKIES

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - SESSION_SECRET must be provided
  - DEVICE_ID_SECRET must be provided
  - DATABASE_URL must be provided when DATABASE_TYPE is postgres

Missing admin passwords are not a startup failure: login reports
env_missing per request until they are configured.
*/
package cliparse
