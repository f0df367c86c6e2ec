package stlc

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MaxRequirementsLength is the maximum number of characters kept in the
// requirements field. Longer input is truncated, never rejected.
const MaxRequirementsLength = 1000

// InputField identifies one of the four free-text fields of the form.
type InputField int

const (
	FieldRequirements InputField = iota
	FieldUserStories
	FieldCodeDiffs
	FieldPreviousTestResults
)

// InputFieldCount is the number of input fields.
const InputFieldCount = 4

// InputFields lists the fields in display order.
var InputFields = [InputFieldCount]InputField{
	FieldRequirements,
	FieldUserStories,
	FieldCodeDiffs,
	FieldPreviousTestResults,
}

// Label returns the human readable field title.
func (f InputField) Label() string {
	switch f {
	case FieldRequirements:
		return "Software Requirements"
	case FieldUserStories:
		return "User Stories (Optional)"
	case FieldCodeDiffs:
		return "Code Diffs (Optional)"
	case FieldPreviousTestResults:
		return "Previous Test Results (Optional)"
	default:
		return "Unknown"
	}
}

// String makes InputField satisfy fmt.Stringer.
func (f InputField) String() string {
	switch f {
	case FieldRequirements:
		return "requirements"
	case FieldUserStories:
		return "user_stories"
	case FieldCodeDiffs:
		return "code_diffs"
	case FieldPreviousTestResults:
		return "previous_test_results"
	default:
		return fmt.Sprintf("InputField(%d)", int(f))
	}
}

// InputForm holds the raw text the user is about to submit.
type InputForm struct {
	Requirements        string
	UserStories         string
	CodeDiffs           string
	PreviousTestResults string
}

// NewInputForm returns an empty form.
func NewInputForm() InputForm {
	return InputForm{}
}

// SetRequirements stores the requirements text, truncated to
// MaxRequirementsLength characters. The truncation is applied even if the
// caller's input widget already enforces a limit.
func (f *InputForm) SetRequirements(value string) {
	f.Requirements = TruncateRequirements(value)
}

func (f *InputForm) SetUserStories(value string) {
	f.UserStories = value
}

func (f *InputForm) SetCodeDiffs(value string) {
	f.CodeDiffs = value
}

func (f *InputForm) SetPreviousTestResults(value string) {
	f.PreviousTestResults = value
}

// SetField dispatches to the mutator for field.
func (f *InputForm) SetField(field InputField, value string) {
	switch field {
	case FieldRequirements:
		f.SetRequirements(value)
	case FieldUserStories:
		f.SetUserStories(value)
	case FieldCodeDiffs:
		f.SetCodeDiffs(value)
	case FieldPreviousTestResults:
		f.SetPreviousTestResults(value)
	}
}

// Field returns the current value of field.
func (f InputForm) Field(field InputField) string {
	switch field {
	case FieldRequirements:
		return f.Requirements
	case FieldUserStories:
		return f.UserStories
	case FieldCodeDiffs:
		return f.CodeDiffs
	case FieldPreviousTestResults:
		return f.PreviousTestResults
	default:
		return ""
	}
}

// RequirementsLength returns the length of the requirements field in characters.
func (f InputForm) RequirementsLength() int {
	return len([]rune(f.Requirements))
}

// TruncateRequirements cuts value down to MaxRequirementsLength characters.
func TruncateRequirements(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxRequirementsLength {
		return value
	}
	return string(runes[:MaxRequirementsLength])
}

// FileHandle is a user-selected file offered for ingestion.
type FileHandle interface {
	// Name is the file name as presented to the user.
	Name() string
	// MediaType is the declared media type, or "" when unknown.
	MediaType() string
	Open() (io.ReadCloser, error)
}

// IngestFile replaces the requirements with the content of file. Only plain
// text files are accepted; on any failure the form is left untouched.
func (f *InputForm) IngestFile(file FileHandle) error {
	if !IsPlainText(file) {
		return fmt.Errorf("%w: %s", ErrFileKindRejected, file.Name())
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileReadFailed, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileReadFailed, err)
	}

	f.SetRequirements(string(data))
	return nil
}

// IsPlainText reports whether file declares itself as text/plain or carries a
// .txt extension.
func IsPlainText(file FileHandle) bool {
	if mediaType := file.MediaType(); mediaType != "" {
		if parsed, _, err := mime.ParseMediaType(mediaType); err == nil && parsed == "text/plain" {
			return true
		}
	}
	return strings.HasSuffix(strings.ToLower(file.Name()), ".txt")
}

// LocalFile is a FileHandle backed by a path on disk. Its media type is
// derived from the extension, the way a browser declares it for a picked file.
type LocalFile struct {
	Path string
}

func (l LocalFile) Name() string {
	return filepath.Base(l.Path)
}

func (l LocalFile) MediaType() string {
	return mime.TypeByExtension(filepath.Ext(l.Path))
}

func (l LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(l.Path)
}

// BufferedFile is a FileHandle whose content was read ahead of ingestion,
// so the ingestion itself never blocks. ReadErr replays a failed read.
type BufferedFile struct {
	FileName string
	Type     string
	Data     []byte
	ReadErr  error
}

func (b BufferedFile) Name() string      { return b.FileName }
func (b BufferedFile) MediaType() string { return b.Type }

func (b BufferedFile) Open() (io.ReadCloser, error) {
	if b.ReadErr != nil {
		return nil, b.ReadErr
	}
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// Preload reads file into memory. Files that are not plain text are not
// read at all.
func Preload(file FileHandle) BufferedFile {
	buffered := BufferedFile{FileName: file.Name(), Type: file.MediaType()}
	if !IsPlainText(file) {
		return buffered
	}
	rc, err := file.Open()
	if err != nil {
		buffered.ReadErr = err
		return buffered
	}
	defer rc.Close()
	buffered.Data, buffered.ReadErr = io.ReadAll(rc)
	return buffered
}
