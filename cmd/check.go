package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/touchctl/touchctl/color"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/icon"
	"github.com/touchctl/touchctl/player"
	"github.com/touchctl/touchctl/style"
	"github.com/touchctl/touchctl/version"
)

// checkDependencies exits when the mpv binary is missing and warns when it is too old.
func checkDependencies(binary string) {
	v, err := player.Probe(binary)
	if errors.Is(err, exec.ErrNotFound) {
		printMissingDependency(binary)
		os.Exit(1)
	}

	if err != nil {
		printWarn("could not determine the %s version: %s", binary, err)
		return
	}

	if c, _ := version.Compare(v.String(), player.MinimumVersion); c < 0 {
		printWarn("%s %s is older than %s, brightness will not be mirrored", binary, v, player.MinimumVersion)
	}
}

func printMissingDependency(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := style.New().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("%q was not found in your PATH.", dep)

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\nTo install it, try running:\n  %s", style.New().Foreground(color.Purple).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}
