package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var ErrSelectionAborted = errors.New("device selection aborted")

// SelectDevice presents an interactive picker over output devices on the
// terminal. If only one device is available, it returns that device without
// prompting.
func SelectDevice(ctx Context) (*DeviceInfo, error) {
	return selectDevice(ctx, os.Stdin, os.Stdout, func() (func(), error) {
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("setting raw mode: %w", err)
		}
		return func() { term.Restore(fd, oldState) }, nil
	})
}

// SelectDeviceFrom runs the picker reading keys from in and drawing to out,
// leaving terminal modes alone.
func SelectDeviceFrom(ctx Context, in io.Reader, out io.Writer) (*DeviceInfo, error) {
	return selectDevice(ctx, in, out, nil)
}

func selectDevice(ctx Context, in io.Reader, out io.Writer, raw func() (func(), error)) (*DeviceInfo, error) {
	devices, err := ctx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no output devices found")
	}

	if len(devices) == 1 {
		return &devices[0], nil
	}

	if raw != nil {
		restore, err := raw()
		if err != nil {
			return nil, err
		}
		defer restore()
	}

	cursor := 0
	renderList := func() {
		fmt.Fprint(out, "\r\x1b[J")
		fmt.Fprint(out, "Select output device (↑/↓, Enter to confirm):\r\n\r\n")
		for i, d := range devices {
			if i == cursor {
				fmt.Fprintf(out, "  \x1b[1;36m▶ %s\x1b[0m\r\n", d.Name)
			} else {
				fmt.Fprintf(out, "    %s\r\n", d.Name)
			}
		}
	}

	renderList()

	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		if n == 0 && err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}

		for i := 0; i < n; i++ {
			if buf[i] == 0x1b && i+2 < n && buf[i+1] == '[' {
				switch buf[i+2] {
				case 'A': // Up arrow
					cursor = moveCursor(cursor, -1, len(devices))
				case 'B': // Down arrow
					cursor = moveCursor(cursor, 1, len(devices))
				}
				i += 2
				continue
			}
			switch buf[i] {
			case 13: // Enter
				fmt.Fprint(out, "\r\n")
				return &devices[cursor], nil
			case 3, 'q': // Ctrl+C
				fmt.Fprint(out, "\r\n")
				return nil, ErrSelectionAborted
			case 'j':
				cursor = moveCursor(cursor, 1, len(devices))
			case 'k':
				cursor = moveCursor(cursor, -1, len(devices))
			}
		}

		lines := len(devices) + 2
		fmt.Fprintf(out, "\x1b[%dA", lines)
		renderList()
	}
}

func moveCursor(cursor, delta, n int) int {
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
