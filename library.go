package libcache

import (
	"context"
	"time"
)

// Status is the processing state of a requested library.
type Status string

// Status constants for Library.
const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// PendingMessage is the message attached to libraries that have not been
// processed yet.
const PendingMessage = "To be imported"

// Library is the outcome of importing one requested keyword library.
type Library struct {
	Name          string `json:"name"`
	Status        Status `json:"status"`
	Fallback      bool   `json:"fallback,omitempty"`
	Message       string `json:"message,omitempty"`
	XMLLibdocPath string `json:"xmlLibdocPath,omitempty"`
	SourcePath    string `json:"sourcePath,omitempty"`

	// ArtifactHash is the checksum of the libdoc file when it was recorded.
	ArtifactHash string    `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// NewPendingLibrary returns a library that has been requested but not processed.
func NewPendingLibrary(name string) *Library {
	return &Library{Name: name, Status: StatusPending, Message: PendingMessage}
}

// Validate returns an error if the library contains invalid fields.
func (l *Library) Validate() error {
	if l.Name == "" {
		return Errorf(EINVALID, "library name required")
	}
	switch l.Status {
	case StatusPending, StatusError:
	case StatusSuccess:
		if l.XMLLibdocPath == "" {
			return Errorf(EINVALID, "library %q: libdoc path required on success", l.Name)
		}
	default:
		return Errorf(EINVALID, "library %q: unknown status %q", l.Name, l.Status)
	}
	return nil
}

// Finalized reports whether the library reached a terminal status.
func (l *Library) Finalized() bool {
	return l.Status == StatusSuccess || l.Status == StatusError
}

// Result is the output of one import run.
type Result struct {
	Libraries   map[string]*Library `json:"libraries"`
	Environment *Environment        `json:"environment"`
}

// Counts returns the number of successful and failed libraries.
func (r *Result) Counts() (succeeded, failed int) {
	for _, lib := range r.Libraries {
		switch lib.Status {
		case StatusSuccess:
			succeeded++
		case StatusError:
			failed++
		}
	}
	return succeeded, failed
}

// LibraryService represents a persistent repository of imported libraries.
type LibraryService interface {
	// AppendLibraries stores the given libraries and returns the stored
	// versions. A library with an error status never replaces a stored
	// successful one; only the stored message is updated in that case.
	AppendLibraries(ctx context.Context, libs []*Library) ([]*Library, error)

	// FindLibraryByName retrieves a library by name.
	// Returns ENOTFOUND if library does not exist.
	FindLibraryByName(ctx context.Context, name string) (*Library, error)

	// FindLibraries retrieves libraries matching the filter.
	FindLibraries(ctx context.Context, filter LibraryFilter) ([]*Library, error)

	// DeleteLibrary removes a library from the repository.
	// Returns ENOTFOUND if library does not exist.
	DeleteLibrary(ctx context.Context, name string) error
}

// LibraryFilter represents a filter for FindLibraries.
type LibraryFilter struct {
	Name   *string `json:"name"`
	Status *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
