package cli

import (
	"os"

	"github.com/justanotheranonymoususer/goscript/cli/smartcontract"
	"github.com/urfave/cli"
)

// version is overwritten at build time via -ldflags.
var version = "dev"

// New creates a goscript instance of [cli.App] with every command
// registered.
func New() *cli.App {
	ctl := cli.NewApp()
	ctl.Name = "goscript"
	ctl.Version = version
	ctl.Usage = "code generator for a Go-subset language targeting a stack-based VM"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, smartcontract.NewCommand())
	return ctl
}
