//go:build darwin

package capture

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <ApplicationServices/ApplicationServices.h>

// kVK_ANSI_C
static const CGKeyCode keyC = 8;

void pressCmdC(void) {
    CGEventSourceRef src = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);

    CGEventRef keyDown = CGEventCreateKeyboardEvent(src, keyC, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(src, keyC, false);

    CGEventSetFlags(keyDown, kCGEventFlagMaskCommand);
    CGEventSetFlags(keyUp, kCGEventFlagMaskCommand);

    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);

    CFRelease(keyDown);
    CFRelease(keyUp);
    if (src != NULL) {
        CFRelease(src);
    }
}
*/
import "C"

type darwinCopier struct{}

func newCopier() (Copier, error) {
	return &darwinCopier{}, nil
}

func (c *darwinCopier) Copy() error {
	C.pressCmdC()
	return nil
}
