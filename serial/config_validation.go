package serial

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Only a registration typo can fail here.
	if err := v.RegisterValidation("serialport", func(fl validator.FieldLevel) bool {
		return isValidPortPattern(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateConfig validates serial port configuration parameters
func ValidateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	// Report the first offending field, in declaration order.
	fe := fieldErrs[0]
	switch fe.StructField() {
	case "PortName":
		if fe.Tag() == "required" {
			return fmt.Errorf("port name cannot be empty")
		}
		return fmt.Errorf("port name doesn't match expected pattern: %s", cfg.PortName)
	case "BaudRate":
		return fmt.Errorf("invalid baud rate %d, must be one of: %v", cfg.BaudRate, validBaudRates)
	case "DataBits":
		return fmt.Errorf("data bits must be 5-8, got: %d", cfg.DataBits)
	case "StopBits":
		return fmt.Errorf("stop bits must be 1, 1.5, or 2, got: %s", cfg.StopBits)
	case "Parity":
		return fmt.Errorf("invalid parity value: %d", int(cfg.Parity))
	case "FlowControl":
		return fmt.Errorf("unsupported flow control %q, only %q is available", cfg.FlowControl, FlowNone)
	}
	return fmt.Errorf("invalid serial configuration: %w", err)
}
