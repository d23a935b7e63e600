package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/de-tools/storage-audit/pkg/services/azure"
	"github.com/de-tools/storage-audit/pkg/services/storage"
	"github.com/spf13/cobra"
)

type AccountsCmd struct {
	subscription string
	profile      string
	out          io.Writer
}

// NewAccountsCmd lists the storage accounts an audit run would cover,
// without fetching any configuration.
func NewAccountsCmd(out io.Writer) *cobra.Command {
	lc := &AccountsCmd{out: out}
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the storage accounts visible in a subscription",
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.subscription, "subscription", "", "Subscription ID (defaults to the profile's subscription)")
	cmd.Flags().StringVar(&lc.profile, "profile", azure.DefaultProfile, "Azure config profile to authenticate with")

	return cmd
}

func (lc *AccountsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := azure.LoadConfig(lc.profile)
	if err != nil {
		return fmt.Errorf("failed to load Azure profile %q: %w", lc.profile, err)
	}

	subscription := lc.subscription
	if subscription == "" {
		subscription = cfg.SubscriptionID
	}
	if subscription == "" {
		return fmt.Errorf("no subscription: pass --subscription or set one in profile %q", lc.profile)
	}

	explorer, err := storage.NewExplorer(subscription, cfg.Credentials)
	if err != nil {
		return err
	}

	accounts, err := explorer.ListAccounts(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintf(lc.out, "No storage accounts found in subscription %s\n", subscription)
		return nil
	}

	w := tabwriter.NewWriter(lc.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION")
	for _, acct := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", acct.Name, acct.ResourceGroup, acct.Location)
	}
	return w.Flush()
}
