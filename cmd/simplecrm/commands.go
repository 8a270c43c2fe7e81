package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/simplecrm/internal/crm"
	"github.com/jask/simplecrm/internal/graphql"
	"github.com/jask/simplecrm/internal/i18n"
	"github.com/jask/simplecrm/internal/query"
	"github.com/jask/simplecrm/internal/tui"
)

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:           "simplecrm",
		Short:         "Terminal client for a SimpleCRM GraphQL endpoint",
		Long:          "Run without arguments to open the interactive interface.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $SIMPLECRM_CONFIG or ~/.config/simplecrm/config.toml)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "GraphQL endpoint URL")
	flags.StringVar(&opts.locale, "locale", "", "interface language (en, de)")
	flags.StringVar(&opts.route, "route", "", "start route, e.g. /contacts")

	root.AddCommand(newContactsCmd(&opts), newCacheCmd(&opts))
	return root
}

func runTUI(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	app, err := tui.New(tui.Deps{
		Context:    ctx,
		Executor:   rt.exec,
		Localizer:  rt.loc,
		Config:     rt.cfg,
		ConfigPath: rt.cfgPath,
		Logger:     rt.log.Named("tui"),
	})
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newContactsCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Print the contact list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(*opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			data, err := query.Fetch[crm.ContactsData](ctx, rt.exec, graphql.Request{
				OperationName: crm.GetContactsOperation,
				Query:         crm.GetContactsQuery,
			})
			if err != nil {
				return fmt.Errorf("load contacts: %w", err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(data.Contacts)
			}
			fmt.Fprintln(out, renderContacts(rt.loc, data.Contacts))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print contacts as JSON")
	return cmd
}

// renderContacts draws the same Name / Organizations / Email projection
// the interactive list uses.
func renderContacts(loc *i18n.Localizer, contacts []crm.Contact) string {
	if len(contacts) == 0 {
		return loc.T(i18n.ContactsEmpty)
	}
	rows := crm.Rows(contacts)
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells())
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(loc.T(i18n.ContactsHeaderName), loc.T(i18n.ContactsHeaderOrgs), loc.T(i18n.ContactsHeaderEmail)).
		Rows(cells...).
		String()
}

func newCacheCmd(opts *options) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(*opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "cache disabled")
				return nil
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := rt.exec.PurgeCache(ctx); err != nil {
				return fmt.Errorf("purge cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.loc.T(i18n.SettingsPurged))
			return nil
		},
	})
	return cacheCmd
}
