package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
)

// Opener implements ports.URLOpener with the system URL handler
type Opener struct {
	goos    string
	browser string
}

// NewOpener creates an opener for the running platform. $BROWSER, when
// set, replaces the platform handler.
func NewOpener() *Opener {
	return &Opener{
		goos:    runtime.GOOS,
		browser: os.Getenv("BROWSER"),
	}
}

// Open hands a web URL to the browser without waiting for it to exit
func (o *Opener) Open(rawURL string) error {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	go cmd.Wait()
	return nil
}

// Command returns the exec.Cmd that opens rawURL. Only http and https
// URLs are accepted so exported data cannot launch local files.
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("not a web URL: %q", rawURL)
	}

	if o.browser != "" {
		return exec.Command(o.browser, rawURL), nil
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", rawURL), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
