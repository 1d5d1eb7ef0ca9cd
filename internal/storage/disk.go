package storage

import (
	"os"
	"time"
)

// FileStat describes a catalog file on disk.
type FileStat struct {
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// StatFile returns size and modification time of the file at path.
// A missing file yields os.ErrNotExist (check with errors.Is).
func StatFile(path string) (FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStat{}, err
	}
	return FileStat{Path: path, SizeBytes: info.Size(), ModTime: info.ModTime()}, nil
}
