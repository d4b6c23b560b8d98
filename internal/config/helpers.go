package config

import "time"

func stringPtr(s string) *string                 { return &s }
func durationPtr(d time.Duration) *time.Duration { return &d }
func logFormatPtr(f LogFormat) *LogFormat        { return &f }
