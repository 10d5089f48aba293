// Package archive moves previously generated flashcard files out of the way
// so the next run starts from a clean output path.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNothingToArchive is returned when the output file does not exist
var ErrNothingToArchive = errors.New("nothing to archive")

// now is replaced in tests
var now = time.Now

// ArchiveOutput moves the output file into an archive directory next to it
// and returns the archived path
func ArchiveOutput(outputPath string) (string, error) {
	// Check if output file exists
	info, err := os.Stat(outputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s does not exist", ErrNothingToArchive, outputPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", outputPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", outputPath)
	}

	// Create archive directory if it doesn't exist
	archiveDir := filepath.Join(filepath.Dir(outputPath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(outputPath)
	name := strings.TrimSuffix(filepath.Base(outputPath), ext)

	// Generate timestamp
	timestamp := now()
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, timestamp.Format("20060102-150405"), ext))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, timestamp.Format("20060102-150405.000000"), ext))
	}

	// Rename output file to archive
	if err := os.Rename(outputPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", outputPath, err)
	}

	return archivePath, nil
}
