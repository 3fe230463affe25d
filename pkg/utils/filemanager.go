// =============================================================================
// POS Billing - File Manager Utility
// =============================================================================
//
// This module provides the file plumbing shared by every writer in the
// application:
//   - Directory management
//   - Atomic whole-file writes (temp file + rename)
//   - Output file naming from placeholder templates
//
// WRITE STRATEGY:
//   Every export, journal update and receipt is written to a temporary file
//   in the destination directory and renamed over the target once complete.
//   A failed write leaves whatever was at the target path untouched.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampFormat is the layout used for the {timestamp} placeholder.
const TimestampFormat = "20060102_150405"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager resolves and writes files under the application's directories.
type FileManager struct {
	// DataDir is where tax reports and the bill journal are written.
	DataDir string

	// ReceiptsDir is where PDF receipts are written.
	ReceiptsDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(dataDir, receiptsDir string) *FileManager {
	return &FileManager{
		DataDir:     dataDir,
		ReceiptsDir: receiptsDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.DataDir, fm.ReceiptsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DataPath joins name onto the data directory.
func (fm *FileManager) DataPath(name string) string {
	return filepath.Join(fm.DataDir, name)
}

// ReceiptPath joins name onto the receipts directory.
func (fm *FileManager) ReceiptPath(name string) string {
	return filepath.Join(fm.ReceiptsDir, name)
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes the output of write to path. The content goes to a
// temporary file next to path which is renamed into place only after write
// and the flush to disk both succeed.
//
// RETURNS:
//   - An error if the directory, temp file, write, sync or rename fails.
//     In every failure case the original file at path is left as it was.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands a file name template.
//
// PARAMETERS:
//   - format: The template. Placeholders:
//       {timestamp} - now as YYYYMMDD_HHMMSS
//       {date}      - now as YYYYMMDD
//       {time}      - now as HHMMSS
//       {uuid}      - a random UUID
//       {<key>}     - any key from params
//   - ext: The extension to enforce, e.g. ".csv". Empty leaves the name alone.
//   - now: The instant the name describes.
//   - params: Extra placeholder values.
//
// EXAMPLE:
//   GenerateOutputFileName("tax_report_{timestamp}", ".csv", now, nil)
//   -> "tax_report_20251231_235959.csv"
func GenerateOutputFileName(format, ext string, now time.Time, params map[string]string) string {
	replacements := map[string]string{
		"{timestamp}": now.Format(TimestampFormat),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
