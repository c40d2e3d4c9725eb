package digitizer

import "fmt"

// ErrChannelOutOfRange reports a source contribution addressing a channel
// beyond the configured channel space. The event must be aborted.
type ErrChannelOutOfRange struct {
	Source  int
	Channel int
	Total   int
}

func (e *ErrChannelOutOfRange) Error() string {
	return fmt.Sprintf("source %d: contribution at channel %d beyond configured total %d",
		e.Source, e.Channel, e.Total)
}

// ErrCorruptInputOrder reports a source stream violating the strictly
// ascending channel order precondition. The event must be aborted.
type ErrCorruptInputOrder struct {
	Source   int
	Channel  int
	Previous int
}

func (e *ErrCorruptInputOrder) Error() string {
	return fmt.Sprintf("source %d: contribution at channel %d after channel %d, stream not strictly ascending",
		e.Source, e.Channel, e.Previous)
}

// ErrMissingCalibrator reports that suppression was requested without a
// calibrator configured.
type ErrMissingCalibrator struct{}

func (e *ErrMissingCalibrator) Error() string {
	return "no calibrator configured, cannot apply suppression thresholds"
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
