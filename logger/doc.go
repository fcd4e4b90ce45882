// Package logger provides structured logging built on zerolog.
//
// It supports JSON and console output, level configuration, named
// component loggers and OpenTelemetry trace correlation.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("multicast")
//	log.Debug("cursor opened", logger.Fields("cursor", 3))
package logger
