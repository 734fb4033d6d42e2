/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"os"
)

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}

// describeFile names a questions file along with its size, for startup logs.
func describeFile(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path
	}

	return fmt.Sprintf("%s (%s)", path, humanReadableSize(info.Size()))
}
