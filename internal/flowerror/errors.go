// Package flowerror defines the structured error types returned by the import
// and sync pipelines. Expected outcomes such as import conflicts or "nothing
// to import" are modeled as result values, not errors.
package flowerror

import "fmt"

// NoHeaderError indicates that no candidate header row with usable column
// names was found in a spreadsheet, i.e. the file contains no valid data.
type NoHeaderError struct {
	Path string
}

func (e *NoHeaderError) Error() string {
	return fmt.Sprintf("%s: file contains no valid data", e.Path)
}

// NoProfileError indicates that no registered import profile matches the
// columns of a spreadsheet. The caller is expected to fall back to manual
// column mapping.
type NoProfileError struct {
	Columns []string
}

func (e *NoProfileError) Error() string {
	return fmt.Sprintf("no import profile matches columns %v", e.Columns)
}

// InvalidBackupError indicates a malformed backup document.
type InvalidBackupError struct {
	Reason string
}

func (e *InvalidBackupError) Error() string {
	return fmt.Sprintf("invalid backup document: %s", e.Reason)
}

// DateParseError indicates a date cell that could not be interpreted. The
// default parsing policy masks this with the current date; callers using the
// strict parser receive it instead.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unable to parse date %q", e.Value)
}

// SyncError wraps a failure of the remote backup channel.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("drive sync %s failed: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
