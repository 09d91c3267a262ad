package clip

import (
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// writeText replaces the clipboard contents with text. Any previous
// contents, including the source image, are discarded.
func writeText(text string) error {
	if atotto.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnavailable)
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}
