package bootstrap

import (
	"github.com/kbukum/seqshare/config"
)

// Config is what NewApp needs from a binary's configuration: the shared
// service section plus its own defaulting and validation. The seqshare CLI
// config satisfies it by embedding config.ServiceConfig and overriding
// ApplyDefaults and Validate for its sharing and telemetry sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
