// Package config loads and validates configuration for the goals API.
//
// Values come from environment variables, parsed into tagged structs by
// caarlos0/env. When a .env file exists in the working directory it is
// loaded first; variables already set in the process win.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// STORE_DRIVER selects the goal store: surrealdb (DB_* variables) or
// postgres and sqlite (DATABASE_URL).
package config
