package terminal

import (
	"io"
	"os"

	"github.com/de-tools/storage-audit/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output  io.Writer
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{output: opts.Output}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage-audit",
		Short: "Audits Azure storage accounts against security best practices",
	}

	cmd.AddCommand(commands.NewAuditCmd())
	cmd.AddCommand(commands.NewAccountsCmd(cli.output))

	return cmd
}
