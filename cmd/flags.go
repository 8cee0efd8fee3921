package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/s2l/internal/types"
)

// viewBoxValue is a pflag.Value accepting "x y w h" or "x,y,w,h".
type viewBoxValue struct {
	vb  types.ViewBox
	set bool
}

var _ pflag.Value = (*viewBoxValue)(nil)

func (v *viewBoxValue) String() string {
	if !v.set {
		return ""
	}
	return v.vb.String()
}

func (v *viewBoxValue) Set(s string) error {
	vb, err := types.ParseViewBox(s)
	if err != nil {
		return err
	}
	v.vb = vb
	v.set = true
	return nil
}

func (v *viewBoxValue) Type() string {
	return "viewBox"
}

// ValidateFormat checks format against the allowed output formats.
func ValidateFormat(format string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q, must be one of: %s", format, strings.Join(allowed, ", "))
}

// AddFlagValidation wraps the flag's Value so that validator runs on every
// Set, before the value is stored.
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}
