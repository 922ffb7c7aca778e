package smartcontract

import (
	"errors"
	"fmt"

	"github.com/justanotheranonymoususer/goscript/pkg/compiler"
	"github.com/urfave/cli"
)

var errNoInput = errors.New("no input file was given, specify one with the '--in or -i' flag")

// NewCommand returns the compile command.
func NewCommand() cli.Command {
	return cli.Command{
		Name:  "contract",
		Usage: "compile Go-subset source into a bytecode artifact",
		Subcommands: []cli.Command{
			{
				Name:   "compile",
				Usage:  "compile a source file; with --trace, report the resulting package/function counts",
				Action: contractCompile,
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:  "in, i",
						Usage: "input source file",
					},
					cli.BoolFlag{
						Name:  "trace, t",
						Usage: "print a one-line summary of the generated program to stderr",
					},
				},
			},
		},
	}
}

// contractCompile implements load_parse_gen (6.5 of the design): parse,
// run the generator, and report either a summary or the recorded
// diagnostics. A non-zero error count prints every diagnostic to stdout
// and exits non-zero, rather than handing a partial artifact to anything
// downstream.
func contractCompile(ctx *cli.Context) error {
	src := ctx.String("in")
	if len(src) == 0 {
		return cli.NewExitError(errNoInput, 1)
	}

	_, err := compiler.LoadParseGen(src, ctx.Bool("trace"))
	if err == nil {
		return nil
	}

	var errs *compiler.ErrorList
	if errors.As(err, &errs) {
		for _, e := range errs.Errors() {
			fmt.Println(e.Error())
		}
		return cli.NewExitError(fmt.Sprintf("%d error(s)", errs.Len()), 1)
	}
	return cli.NewExitError(err, 1)
}
