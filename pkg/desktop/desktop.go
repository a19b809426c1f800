package desktop

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Notifier delivers notifications through the local OS. Every call is
// best-effort: failures are returned for logging and never retried.
type Notifier struct {
	appName string
}

func NewNotifier(appName string) *Notifier {
	return &Notifier{appName: appName}
}

// Show posts a desktop toast notification.
func (n *Notifier) Show(title, body string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		script := fmt.Sprintf(
			`[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms') | Out-Null; `+
				`$n = New-Object System.Windows.Forms.NotifyIcon; `+
				`$n.Icon = [System.Drawing.SystemIcons]::Information; `+
				`$n.Visible = $true; $n.ShowBalloonTip(5000, '%s', '%s', 'Info')`,
			escapeSingleQuotes(title), escapeSingleQuotes(body))
		cmd = exec.Command("powershell", "-NoProfile", "-Command", script)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`,
			escapeDoubleQuotes(body), escapeDoubleQuotes(title))
		cmd = exec.Command("osascript", "-e", script)
	default:
		cmd = exec.Command("notify-send", "--app-name", n.appName, title, body)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("show desktop notification: %w", err)
	}
	return nil
}

// PlaySound plays the system alert sound.
func (n *Notifier) PlaySound() error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("powershell", "-NoProfile", "-Command", "[console]::beep(880, 400)")
	case "darwin":
		cmd = exec.Command("afplay", "/System/Library/Sounds/Glass.aiff")
	default:
		cmd = exec.Command("canberra-gtk-play", "--id", "bell")
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play notification sound: %w", err)
	}
	return nil
}

func escapeSingleQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func escapeDoubleQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
