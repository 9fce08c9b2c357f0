package utils

import (
	"os"
	"strconv"
	"syscall"
	"unsafe"
)

// fallbackTermWidth is used when no terminal is attached.
const fallbackTermWidth = 80

type winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}

// TermWidth reports the width of the attached terminal in columns.
// $COLUMNS wins when set to a positive number. Without a TTY, the
// winsize ioctl fails and the fallback width is returned instead of
// an error, so callers can format output unconditionally.
func TermWidth() (int, error) {
	if c := os.Getenv("COLUMNS"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n, nil
		}
	}

	var ws winsize
	retCode, _, _ := syscall.Syscall(
		syscall.SYS_IOCTL,
		uintptr(syscall.Stderr),
		uintptr(syscall.TIOCGWINSZ),
		uintptr(unsafe.Pointer(&ws)),
	)
	if int(retCode) == -1 || ws.Col == 0 {
		return fallbackTermWidth, nil
	}
	return int(ws.Col), nil
}
