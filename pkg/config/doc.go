// Package config holds the runtime settings of the lead form: server,
// extraction client, logging, locale and theme. Settings are read with viper
// from leadform.yaml and LEADFORM_ prefixed environment variables and checked
// with ozzo-validation before use.
package config
