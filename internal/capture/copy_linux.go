//go:build linux

package capture

import (
	"fmt"
	"os"
	"os/exec"
)

type linuxCopier struct {
	useWayland bool
}

func newCopier() (Copier, error) {
	c := &linuxCopier{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	tool := "xdotool"
	if c.useWayland {
		tool = "wtype"
	}
	if _, err := exec.LookPath(tool); err != nil {
		return nil, fmt.Errorf("%w: не найден %s", ErrCapture, tool)
	}
	return c, nil
}

func (c *linuxCopier) Copy() error {
	if c.useWayland {
		return c.copyWayland()
	}
	return c.copyX11()
}

// copyX11 отпускает зажатые модификаторы аккорда, иначе Super+Ctrl+C не сработает как копирование.
func (c *linuxCopier) copyX11() error {
	cmd := exec.Command("xdotool", "key", "--clearmodifiers", "ctrl+c")
	return cmd.Run()
}

func (c *linuxCopier) copyWayland() error {
	cmd := exec.Command("wtype", "-M", "ctrl", "c", "-m", "ctrl")
	return cmd.Run()
}
