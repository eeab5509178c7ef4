package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"

	"github.com/vireodb/vireo/pkg/engine/executor"
)

// listCommand prints the registered operations and their traits.
type listCommand struct{}

func (cmd *listCommand) run(c *kingpin.ParseContext) error {
	bold := color.New(color.Bold)
	for _, name := range executor.Names() {
		fn, err := executor.Lookup(name)
		if err != nil {
			exitWithErr(err)
		}
		s := fn.Strategy()

		bold.Printf("%s:", name)
		fmt.Printf(" expression: %s, predicate: %t, folding: %t\n",
			expressionTrait(s), s.NeedsBooleanResult(), s.IsFolding())
	}
	return nil
}

func expressionTrait(s executor.Strategy) string {
	if s.NeedsExpression() {
		return "required"
	}
	return "optional"
}

func addListCommand(app *kingpin.Application) {
	cmd := &listCommand{}
	app.Command("list", "List the registered operations.").Action(cmd.run)
}
