package cmd

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/veldrin/ce-autostart/internal/config"
	"github.com/veldrin/ce-autostart/internal/edit"
	"github.com/veldrin/ce-autostart/internal/steam"
)

var launchOptionsCmd = &cobra.Command{
	Use:   "launch-options",
	Short: "Inspect and edit per-game Steam launch options",
	Long: `Inspect and edit the launch options Steam stores per game in
localconfig.vdf. Edits always write a backup of the previous value first,
and the file is replaced atomically so an interrupted write can never leave
a truncated config behind.

Steam rewrites localconfig.vdf on exit; edit launch options while Steam is
not running (or be prepared for Steam to overwrite them).`,
}

var (
	optsFile      string
	optsSteamPath string
	optsBackupDir string
	optsYes       bool
)

var launchOptionsGetCmd = &cobra.Command{
	Use:   "get <appid>",
	Short: "Print a game's launch options",
	Args:  cobra.ExactArgs(1),
	RunE:  runLaunchOptionsGet,
}

var launchOptionsSetCmd = &cobra.Command{
	Use:   "set <appid> <options>",
	Short: "Set a game's launch options",
	Long: `Set a game's launch options, e.g.:

  ce-autostart launch-options set 1228870 'protonhax init %COMMAND%'

If the game already has launch options, the previous value is shown and a
confirmation is asked (unless --yes). The previous value is also recorded
in a backup file before the config is rewritten.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLaunchOptionsSet,
}

var launchOptionsRemoveCmd = &cobra.Command{
	Use:   "remove <appid>",
	Short: "Remove a game's launch options",
	Args:  cobra.ExactArgs(1),
	RunE:  runLaunchOptionsRemove,
}

func init() {
	launchOptionsCmd.PersistentFlags().StringVar(&optsFile, "file", "", "localconfig.vdf to edit (default: auto-detect)")
	launchOptionsCmd.PersistentFlags().StringVar(&optsSteamPath, "steam-path", "", "steamapps directory (default: from config)")
	launchOptionsCmd.PersistentFlags().StringVar(&optsBackupDir, "backup-dir", "", "backup directory (default: from config)")
	launchOptionsCmd.PersistentFlags().BoolVarP(&optsYes, "yes", "y", false, "do not ask for confirmation")

	launchOptionsCmd.AddCommand(launchOptionsGetCmd)
	launchOptionsCmd.AddCommand(launchOptionsSetCmd)
	launchOptionsCmd.AddCommand(launchOptionsRemoveCmd)
}

func runLaunchOptionsGet(cmd *cobra.Command, args []string) error {
	appID := args[0]

	session, err := openLocalConfig()
	if err != nil {
		return err
	}

	path, err := steam.AppConfigPath(session.Tree(), appID)
	if err != nil {
		return err
	}

	value, ok, err := edit.Get(session.Tree(), path, steam.LaunchOptionsField)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("No launch options set for %s\n", appID)
		return nil
	}
	fmt.Println(value)
	return nil
}

func runLaunchOptionsSet(cmd *cobra.Command, args []string) error {
	appID := args[0]
	value := strings.Join(args[1:], " ")

	session, err := openLocalConfig()
	if err != nil {
		return err
	}

	path, err := steam.AppConfigPath(session.Tree(), appID)
	if err != nil {
		return err
	}

	op := edit.Op{Path: path, Field: steam.LaunchOptionsField, Action: edit.ActionSet, Value: value}
	preview, err := session.Preview(op)
	if err != nil {
		return err
	}

	if !preview.Changed {
		fmt.Printf("Launch options for %s already set to %q, nothing to do\n", appID, value)
		return nil
	}
	if preview.HadPrevious && !optsYes {
		ok, err := confirm(fmt.Sprintf("Replace existing launch options %q?", preview.Previous))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	if _, err := session.Apply(op); err != nil {
		return err
	}
	return commitSession(session)
}

func runLaunchOptionsRemove(cmd *cobra.Command, args []string) error {
	appID := args[0]

	session, err := openLocalConfig()
	if err != nil {
		return err
	}

	path, err := steam.AppConfigPath(session.Tree(), appID)
	if err != nil {
		return err
	}

	op := edit.Op{Path: path, Field: steam.LaunchOptionsField, Action: edit.ActionRemove}
	preview, err := session.Preview(op)
	if err != nil {
		return err
	}

	if !preview.HadPrevious {
		fmt.Printf("No launch options set for %s, nothing to do\n", appID)
		return nil
	}
	if !optsYes {
		ok, err := confirm(fmt.Sprintf("Remove launch options %q?", preview.Previous))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	if _, err := session.Apply(op); err != nil {
		return err
	}
	return commitSession(session)
}

// openLocalConfig opens an edit session on the localconfig.vdf selected by
// flags, the tool config, or the default Steam location.
func openLocalConfig() (*edit.Session, error) {
	if optsFile != "" {
		return edit.Open(optsFile)
	}

	steamApps := optsSteamPath
	if steamApps == "" {
		if cfg, _, err := config.Load(cfgFile); err == nil {
			steamApps = cfg.SteamAppsDir()
		} else {
			steamApps = config.ExpandHome("~/.local/share/Steam/steamapps")
		}
	}

	path, err := steam.LocalConfigPath(steam.RootFromSteamApps(steamApps))
	if err != nil {
		return nil, err
	}
	return edit.Open(path)
}

// commitSession writes the backup and atomically replaces the config file.
func commitSession(session *edit.Session) error {
	backupPath, err := session.Commit(backupDir())
	if err != nil {
		return err
	}
	if backupPath != "" {
		fmt.Printf("Previous values backed up to: %s\n", backupPath)
	}
	fmt.Printf("Updated %s\n", session.Path())
	return nil
}

func backupDir() string {
	if optsBackupDir != "" {
		return config.ExpandHome(optsBackupDir)
	}
	if cfg, _, err := config.Load(cfgFile); err == nil {
		return cfg.BackupDir()
	}
	return (&config.Config{}).BackupDir()
}

// confirm asks a yes/no question on the terminal. Empty input means no.
func confirm(prompt string) (bool, error) {
	line, err := readline.Line(prompt + " [y/N] ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
