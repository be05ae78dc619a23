// Package config reads and writes user settings for the scaffolder using Viper.
// Settings live in ~/.10up-scaffold/config.yaml and can be overridden by
// TENUP_SCAFFOLD_* environment variables.
package config
