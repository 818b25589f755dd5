package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/veldrin/ce-autostart/internal/edit"
	"github.com/veldrin/ce-autostart/internal/protonhax"
	"github.com/veldrin/ce-autostart/internal/steam"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu",
	Long: `Run ce-autostart as an interactive menu: launch Cheat Engine for the
running game, edit or remove launch options with per-game confirmation, list
installed games, or refresh the app cache.`,
	RunE: runMenu,
}

// errMenuQuit signals that the user asked to leave the menu (Ctrl-C/Ctrl-D
// or the quit choice).
var errMenuQuit = errors.New("quit")

func runMenu(cmd *cobra.Command, args []string) error {
	rl, err := readline.New("> ")
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		fmt.Println()
		fmt.Println("ce-autostart")
		fmt.Println("  1) Launch Cheat Engine for the running game")
		fmt.Println("  2) Edit launch options")
		fmt.Println("  3) Remove launch options")
		fmt.Println("  4) List installed games")
		fmt.Println("  5) Refresh Steam app cache")
		fmt.Println("  q) Quit")

		choice, err := ask(rl, "> ")
		if err != nil {
			if errors.Is(err, errMenuQuit) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			err = menuLaunch()
		case "2":
			err = menuEditOptions(rl)
		case "3":
			err = menuRemoveOptions(rl)
		case "4":
			err = runGames(cmd, nil)
		case "5":
			err = runRefreshCache(cmd, nil)
		case "q", "quit", "exit":
			return nil
		case "":
			continue
		default:
			fmt.Printf("Unknown choice %q\n", choice)
			continue
		}

		if err != nil {
			if errors.Is(err, errMenuQuit) {
				return nil
			}
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func menuLaunch() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appID, err := protonhax.NewClient().ListRunning()
	if err != nil {
		return err
	}
	return launchCheatEngine(cfg, appID)
}

// menuEditOptions runs a batch edit session: any number of games can be
// edited, each with its own confirm-or-skip decision, and the file is
// rewritten once at the end. Skipped games are simply never applied;
// earlier confirmed edits still commit.
func menuEditOptions(rl *readline.Instance) error {
	session, err := openLocalConfig()
	if err != nil {
		return err
	}

	for {
		appID, err := ask(rl, "App id (blank to finish): ")
		if err != nil {
			return err
		}
		if appID == "" {
			break
		}

		path, err := steam.AppConfigPath(session.Tree(), appID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		if current, ok, err := edit.Get(session.Tree(), path, steam.LaunchOptionsField); err == nil && ok {
			fmt.Printf("Current launch options: %q\n", current)
		}

		value, err := ask(rl, "New launch options: ")
		if err != nil {
			return err
		}

		op := edit.Op{Path: path, Field: steam.LaunchOptionsField, Action: edit.ActionSet, Value: value}
		preview, err := session.Preview(op)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if !preview.Changed {
			fmt.Println("No change")
			continue
		}
		if preview.HadPrevious {
			ok, err := menuConfirm(rl, fmt.Sprintf("Replace existing launch options %q?", preview.Previous))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Skipped")
				continue
			}
		}
		if _, err := session.Apply(op); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	if len(session.Results()) == 0 {
		fmt.Println("Nothing to write")
		return nil
	}
	return commitSession(session)
}

func menuRemoveOptions(rl *readline.Instance) error {
	session, err := openLocalConfig()
	if err != nil {
		return err
	}

	appID, err := ask(rl, "App id: ")
	if err != nil {
		return err
	}
	if appID == "" {
		return nil
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
		fmt.Printf("No launch options set for %s\n", appID)
		return nil
	}

	ok, err := menuConfirm(rl, fmt.Sprintf("Remove launch options %q?", preview.Previous))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Skipped")
		return nil
	}

	if _, err := session.Apply(op); err != nil {
		return err
	}
	return commitSession(session)
}

// ask reads one trimmed line, mapping Ctrl-C and Ctrl-D to errMenuQuit.
func ask(rl *readline.Instance, prompt string) (string, error) {
	rl.SetPrompt(prompt)
	line, err := rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", errMenuQuit
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func menuConfirm(rl *readline.Instance, prompt string) (bool, error) {
	answer, err := ask(rl, prompt+" [y/N] ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
