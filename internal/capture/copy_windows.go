//go:build windows

package capture

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard  = 1
	keyEventFKeyUp = 0x0002
	vkControl      = 0x11
	vkC            = 0x43
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

type windowsCopier struct{}

func newCopier() (Copier, error) {
	return &windowsCopier{}, nil
}

func keyInput(vk uint16, up bool) input {
	var flags uint32
	if up {
		flags = keyEventFKeyUp
	}
	return input{
		inputType: inputKeyboard,
		ki: keyboardInput{
			wVk:     vk,
			dwFlags: flags,
		},
	}
}

// Copy отправляет Ctrl+C в активное окно.
func (c *windowsCopier) Copy() error {
	inputs := []input{
		keyInput(vkControl, false),
		keyInput(vkC, false),
		keyInput(vkC, true),
		keyInput(vkControl, true),
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput: отправлено %d из %d: %v", sent, len(inputs), err)
	}
	return nil
}
