// Package config loads service configuration with Viper.
//
// Files are resolved from standard locations (./cmd/<service>/config.yml,
// ./config/config.yml, ./config.yml), a .env file is loaded with godotenv,
// and environment variables override file values:
//
//	var cfg MyConfig
//	err := config.LoadConfig("seqshare", &cfg, config.WithEnvPrefix("SEQSHARE"))
//
// With the prefix above SEQSHARE_SHARING_POLICY sets sharing.policy.
package config
