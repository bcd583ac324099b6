package common

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// minLineWidth leaves room for the spinner and the elapsed time after the label.
const minLineWidth = 64

// Spinner shows an indeterminate progress line while a blocking call runs.
// A disabled Spinner is a no-op.
type Spinner struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
}

// StartSpinner renders label with a spinner and elapsed time to writer.
func StartSpinner(writer io.Writer, label string, enabled bool) *Spinner {
	if !enabled {
		return &Spinner{enabled: false}
	}
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWidth(max(minLineWidth, len(label)+32)),
		mpb.WithAutoRefresh(),
	)
	bar := container.New(0,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(
			decor.Name(label+" ", decor.WC{W: len(label) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), "done"),
		),
		mpb.BarFillerClearOnComplete(),
	)

	return &Spinner{
		container: container,
		bar:       bar,
		enabled:   true,
	}
}

// Stop completes the spinner and waits for the final render.
func (s *Spinner) Stop() {
	if !s.enabled || s.bar == nil {
		return
	}
	s.bar.SetTotal(-1, true)
	s.container.Wait()
}

// IsTTY reports whether writer is a terminal.
func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress enables progress output on terminals unless disabled.
func ShouldShowProgress(disabled bool) bool {
	if disabled {
		return false
	}
	return IsTTY(os.Stderr)
}
