package timesheet

import "github.com/atotto/clipboard"

// SystemClipboard writes through the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
