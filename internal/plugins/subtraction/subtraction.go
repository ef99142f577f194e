package subtraction

import (
	"errors"

	"gocalc/internal/calc"
	"gocalc/internal/core"
	"gocalc/internal/plugin"
)

func init() {
	plugin.Register(plugin.Descriptor{
		Name:    calc.Sub.Name,
		Summary: "Subtracts two numbers",
		New: func(deps plugin.Deps) (core.Command, error) {
			if deps.Console == nil {
				return nil, errors.New("console is required")
			}
			return calc.NewCommand(calc.Sub, deps.Console, deps.History, deps.Log), nil
		},
	})
}
