// Package pathconv rewrites host-native Windows paths into the form seen
// from inside WSL, so a full-path reference pasted into a WSL terminal
// resolves to the same file.
package pathconv

import (
	"fmt"
	"strings"
)

// Style selects the path convention used for full-path references.
type Style string

const (
	// StyleNative leaves paths exactly as the host reports them.
	StyleNative Style = "native"
	// StyleWSL maps drive-letter paths onto the WSL mount root.
	StyleWSL Style = "wsl"
)

// DefaultMountPrefix is where WSL mounts Windows drives.
const DefaultMountPrefix = "/mnt"

// ParseStyle converts s to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native", "host":
		return StyleNative, nil
	case "wsl":
		return StyleWSL, nil
	default:
		return "", fmt.Errorf("unknown path style %q (want native|wsl)", s)
	}
}

// Options configures Translate.
type Options struct {
	Style       Style
	MountPrefix string // defaults to DefaultMountPrefix
}

// Translate rewrites path according to opts. With StyleWSL,
// `C:\Users\me\x.png` becomes `/mnt/c/Users/me/x.png`; paths without a drive
// letter only have their separators normalised. StyleNative returns path
// unchanged.
func Translate(path string, opts Options) string {
	if opts.Style != StyleWSL {
		return path
	}
	prefix := strings.TrimRight(opts.MountPrefix, "/")
	if opts.MountPrefix == "" {
		prefix = DefaultMountPrefix
	}

	p := strings.ReplaceAll(path, `\`, "/")
	if !hasDrive(p) {
		return p
	}
	drive := strings.ToLower(p[:1])
	rest := strings.TrimLeft(p[2:], "/")
	if rest == "" {
		return prefix + "/" + drive
	}
	return prefix + "/" + drive + "/" + rest
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
