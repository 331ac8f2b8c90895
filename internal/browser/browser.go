// Package browser opens article links in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the system browser for link. Only http and https links
// are accepted; feeds occasionally carry other schemes.
func Open(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parsing link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("not a web link: scheme %q", u.Scheme)
	}

	name, args := openCommand(runtime.GOOS, link)
	return exec.Command(name, args...).Start()
}

// openCommand picks the platform launcher. On Windows, rundll32 avoids
// the shell interpretation that cmd /c start applies to its argument.
func openCommand(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}
