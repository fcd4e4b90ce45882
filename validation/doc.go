// Package validation provides argument and configuration validation.
//
// Struct tag validation (go-playground/validator) is used for configuration:
//
//	type Sharing struct {
//	    Policy  string `mapstructure:"policy" validate:"oneof=share publish memoize"`
//	    Readers int    `mapstructure:"readers" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// The fluent Validator is used for operator arguments:
//
//	if err := validation.New().Min("readers", n, 1).Validate(); err != nil {
//	    return nil, err
//	}
//
// Both report failures as *errors.AppError with code INVALID_INPUT.
package validation
