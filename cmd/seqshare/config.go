package main

import (
	"github.com/kbukum/seqshare/config"
	"github.com/kbukum/seqshare/multicast"
	"github.com/kbukum/seqshare/validation"
)

// Config is the seqshare CLI configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Sharing              SharingConfig   `yaml:"sharing" mapstructure:"sharing"`
	Telemetry            TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// SharingConfig selects the policy and the demo workload.
type SharingConfig struct {
	Policy    string `yaml:"policy" mapstructure:"policy" validate:"required,oneof=share publish memoize"`
	Readers   int    `yaml:"readers" mapstructure:"readers" validate:"gte=0"`
	Consumers int    `yaml:"consumers" mapstructure:"consumers" validate:"min=1,max=64"`
	Count     int    `yaml:"count" mapstructure:"count" validate:"gte=0"`
}

// TelemetryConfig controls OTLP export of multicast metrics and spans.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Sharing.Policy == "" {
		c.Sharing.Policy = "memoize"
	}
	if c.Sharing.Consumers == 0 {
		c.Sharing.Consumers = 3
	}
	if c.Sharing.Count == 0 {
		c.Sharing.Count = 10
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	_, err := c.policy()
	return err
}

func (c *Config) policy() (multicast.Policy, error) {
	return multicast.ParsePolicy(c.Sharing.Policy, c.Sharing.Readers)
}
