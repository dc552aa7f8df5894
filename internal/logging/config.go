// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

const (
	defaultTimeFormat = "2006-01-02 15:04:05"
	defaultFilePath   = "bulk_import.log"
)

// Config describes where and how log entries are written.
type Config struct {
	Level      string
	Encoding   string
	TimeFormat string

	ToFile   bool
	FilePath string
	// FileMode is "a" to append to an existing file or "w" to truncate it.
	FileMode string
}

func NewConfig(level, encoding, timeFormat string, toFile bool, filePath, fileMode string) *Config {
	c := new(Config)

	c.Level = level
	c.Encoding = encoding
	c.TimeFormat = timeFormat
	c.ToFile = toFile
	c.FilePath = filePath
	c.FileMode = fileMode

	if c.TimeFormat == "" {
		c.TimeFormat = defaultTimeFormat
	}
	if c.FilePath == "" {
		c.FilePath = defaultFilePath
	}

	return c
}
