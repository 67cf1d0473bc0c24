package ioload

import (
	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar with consistent settings, or
// nil when progress display is disabled. The helpers below accept the
// nil bar so load loops stay free of enabled-checks.
func newProgressBar(
	enabled bool,
	prefix string,
	total int,
) *pb.ProgressBar {
	if !enabled {
		return nil
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func barAdd(bar *pb.ProgressBar, n int) {
	if bar != nil {
		bar.Add(n)
	}
}

func barFinish(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
