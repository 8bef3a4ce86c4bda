// Command goguard-admin is a terminal shell for the CMS admin session: it
// logs in, inspects the session, and walks the guarded menu the way a
// browser shell would, persisting the session between invocations through
// file storage.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/nav"
	"github.com/MrEthical07/goGuard/session"
	"github.com/spf13/cobra"
)

// sidebar mirrors the admin shell navigation.
var sidebar = []nav.Entry{
	{Route: "/", LabelKey: "sidebar.dashboard", Permission: "dashboard.view"},
	{Route: "/hero-section", LabelKey: "sidebar.hero_section", Permission: "hero_section.view"},
	{Route: "/services", LabelKey: "sidebar.services", Permission: "services.view"},
	{Route: "/messages", LabelKey: "sidebar.messages", Permission: "messages.view"},
	{Route: "/roles", LabelKey: "sidebar.roles", Permission: "roles.view"},
	{Route: "/admins", LabelKey: "sidebar.admins", Permission: "admins.view"},
	{Route: "/settings", LabelKey: "sidebar.settings", Permission: "settings.view"},
}

type cliShell struct {
	engine *goGuard.Engine
	menu   *nav.Menu
}

// terminalNavigator prints navigation instead of mutating browser history.
type terminalNavigator struct{}

func (terminalNavigator) Replace(route string) {
	fmt.Printf("-> %s\n", route)
}

type terminalNotifier struct{}

func (terminalNotifier) Success(message string) { fmt.Printf("ok: %s\n", message) }
func (terminalNotifier) Error(message string)   { fmt.Printf("error: %s\n", message) }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		stateDir   string
		baseURL    string
		shell      cliShell
	)

	root := &cobra.Command{
		Use:           "goguard-admin",
		Short:         "Session shell for the CMS admin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := buildEngine(cmd.Context(), configPath, stateDir, baseURL)
			if err != nil {
				return err
			}
			shell.engine = engine
			shell.menu = nav.NewMenu(sidebar)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if shell.engine != nil {
				shell.engine.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a goguard YAML config file")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "directory for session state (default: user config dir)")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides config)")

	root.AddCommand(
		newLoginCmd(&shell),
		newLogoutCmd(&shell),
		newWhoamiCmd(&shell),
		newMenuCmd(&shell),
		newOpenCmd(&shell),
		newRefreshCmd(&shell),
		newLocaleCmd(&shell),
	)
	return root
}

func buildEngine(ctx context.Context, configPath, stateDir, baseURL string) (*goGuard.Engine, error) {
	var cfg goGuard.Config
	if configPath != "" {
		loaded, err := goGuard.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg, _ = goGuard.LoadConfigFile(defaultConfigPath())
		if cfg.API.BaseURL == "" && baseURL == "" {
			return nil, errors.New("no backend configured: pass --base-url or --config")
		}
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	if stateDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		stateDir = filepath.Join(dir, "goguard")
	}
	storage, err := session.NewFileStorage(stateDir)
	if err != nil {
		return nil, err
	}

	keys := nav.NewMenu(sidebar).PermissionKeys()
	return goGuard.New().
		WithConfig(cfg).
		WithStorage(storage).
		WithNavigator(terminalNavigator{}).
		WithNotifier(terminalNotifier{}).
		WithPermissionKeys(keys).
		Build(ctx)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "goguard", "goguard.yaml")
}

func newLoginCmd(shell *cliShell) *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "login <identifier>",
		Short: "Exchange credentials for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				fmt.Print("secret: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return err
				}
				secret = strings.TrimSpace(line)
			}

			err := shell.engine.Login(cmd.Context(), goGuard.Credentials{
				Identifier: args[0],
				Secret:     secret,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "secret (prompted when omitted)")
	return cmd
}

func newLogoutCmd(shell *cliShell) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return shell.engine.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(shell *cliShell) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := shell.engine.Snapshot()
			if !snap.Authenticated() {
				fmt.Println("not logged in")
				return nil
			}

			fmt.Printf("locale:      %s\n", snap.Locale)
			fmt.Printf("permissions: %s\n", strings.Join(snap.Permissions, ", "))

			info, err := shell.engine.SessionInfo()
			switch {
			case err == nil:
				fmt.Printf("subject:     %s\n", info.Subject)
				if !info.ExpiresAt.IsZero() {
					fmt.Printf("expires:     %s\n", info.ExpiresAt.Format("2006-01-02 15:04:05"))
				}
			case errors.Is(err, goGuard.ErrUnauthenticated):
				fmt.Println("no session")
			default:
				// Opaque token; nothing to show beyond the session itself.
				fmt.Println("token:       opaque")
			}
			return nil
		},
	}
}

func newMenuCmd(shell *cliShell) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List navigation entries visible to the session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			entries := shell.engine.VisibleMenu(shell.menu)
			if len(entries) == 0 {
				fmt.Println("(no visible entries)")
				return nil
			}
			for _, entry := range entries {
				fmt.Printf("%-20s %s\n", entry.Route, entry.LabelKey)
			}
			return nil
		},
	}
}

func newOpenCmd(shell *cliShell) *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Evaluate the route guards as the shell would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := args[0]

			var key string
			found := false
			for _, entry := range shell.menu.Entries() {
				if entry.Route == route {
					key = entry.Permission
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown route %q", route)
			}

			view := shell.engine.RequirePermission(key, func(context.Context) error {
				fmt.Printf("rendered %s\n", route)
				return nil
			})
			return view(cmd.Context())
		},
	}
}

func newRefreshCmd(shell *cliShell) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refetch the permission set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := shell.engine.RefreshPermissions(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("permissions: %s\n", strings.Join(shell.engine.Snapshot().Permissions, ", "))
			return nil
		},
	}
}

func newLocaleCmd(shell *cliShell) *cobra.Command {
	return &cobra.Command{
		Use:   "locale <ar|en>",
		Short: "Set the display locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell.engine.SetLocale(cmd.Context(), args[0])
		},
	}
}
