// ce-autostart attaches Cheat Engine to Steam games running under Proton
// and manages per-game launch options in Steam's localconfig.vdf.
package main

import "github.com/veldrin/ce-autostart/internal/cmd"

func main() {
	cmd.Execute()
}
