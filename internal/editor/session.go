// Package editor manages the edit/save/cancel lifecycle for a submodel
// element tree: pending edits buffered by idShort path, typed validation
// before submission, and delta-only patches to the repository.
package editor

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/app"
)

// State of an edit session.
type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

// Common session errors.
var (
	ErrNotEditing      = errors.New("session is not in edit mode")
	ErrSaveInFlight    = errors.New("a save is already in progress")
	ErrNotEditable     = errors.New("element is not editable")
	ErrNoLanguagesLeft = errors.New("all supported languages are already present")
)

// FieldError attributes a validation failure to the path it occurred at.
type FieldError struct {
	Path    string
	Message string
}

// ValidationError aborts a save and carries every failing field so the
// user can fix them all in place.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d fields failed validation", len(e.Fields))
}

// Saver submits a flat path-to-value patch for one submodel. Implemented
// by the API client.
type Saver interface {
	UpdateSubmodelData(ctx context.Context, aasID, submodelID string, patch map[string]any) error
}

// Session owns the edit buffer for one submodel for the lifetime of one
// editing session. The fetched tree is treated as immutable; only the
// buffer mutates. Sessions are not safe for concurrent use; every method
// belongs to the goroutine that owns the session. Saving off that
// goroutine goes through StartSave/FinishSave, which keep all mutation on
// the owner and hand the network call a frozen SaveRequest.
type Session struct {
	aasID    string
	submodel *aas.Submodel

	state  State
	buffer map[string]any

	// generation bumps on cancel/finish so a save completing after the
	// session moved on cannot touch a buffer that no longer exists.
	generation uint64

	log *zap.Logger
}

// NewSession starts in Viewing with no buffer.
func NewSession(aasID string, sm *aas.Submodel) *Session {
	return &Session{
		aasID:    aasID,
		submodel: sm,
		state:    StateViewing,
		log:      app.Logger(),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Submodel returns the tree this session edits.
func (s *Session) Submodel() *aas.Submodel { return s.submodel }

// Dirty reports whether any edits are buffered.
func (s *Session) Dirty() bool { return len(s.buffer) > 0 }

// Pending returns a copy of the buffered edits.
func (s *Session) Pending() map[string]any {
	out := make(map[string]any, len(s.buffer))
	for k, v := range s.buffer {
		out[k] = v
	}
	return out
}

// Begin enters edit mode, creating a fresh empty buffer. Beginning an
// already-editing session is a no-op.
func (s *Session) Begin() {
	if s.state != StateViewing {
		return
	}
	s.state = StateEditing
	s.buffer = make(map[string]any)
}

// Cancel discards the buffer unconditionally and returns to Viewing.
// Any in-flight save result is ignored from here on.
func (s *Session) Cancel() {
	s.buffer = nil
	s.state = StateViewing
	s.generation++
}

// Editable reports whether an element kind accepts leaf edits.
func Editable(el aas.Element) bool {
	switch el.(type) {
	case *aas.Property, *aas.MultiLanguageProperty, *aas.File:
		return true
	default:
		return false
	}
}

// Set buffers a pending value for a path, overwriting any earlier edit of
// the same path (last write wins). The target must be an editable leaf.
// Setting is allowed while a save is in flight; the new value joins the
// next batch.
func (s *Session) Set(path string, value any) error {
	if s.state == StateViewing {
		return ErrNotEditing
	}
	if el, ok := aas.Resolve(s.submodel, path); ok && !Editable(el) {
		return ErrNotEditable
	}
	s.buffer[path] = value
	return nil
}

// languageEntries returns the working multi-language entries for a path:
// the buffered value when present, else the element's current value.
func (s *Session) languageEntries(path string) ([]aas.LangString, *aas.MultiLanguageProperty, error) {
	el, ok := aas.Resolve(s.submodel, path)
	if !ok {
		return nil, nil, fmt.Errorf("no element at %q", path)
	}
	mlp, ok := el.(*aas.MultiLanguageProperty)
	if !ok {
		return nil, nil, ErrNotEditable
	}
	if buffered, ok := s.buffer[path].([]aas.LangString); ok {
		return buffered, mlp, nil
	}
	return append([]aas.LangString(nil), mlp.Value...), mlp, nil
}

// AddLanguage adds the first supported language not yet present on the
// multi-language property at path, with empty text, and returns the
// language added. When every supported language is present it returns
// ErrNoLanguagesLeft, a user-visible warning rather than a failure.
func (s *Session) AddLanguage(path string) (string, error) {
	if s.state == StateViewing {
		return "", ErrNotEditing
	}
	entries, _, err := s.languageEntries(path)
	if err != nil {
		return "", err
	}
	missing := aas.MissingLanguages(entries)
	if len(missing) == 0 {
		return "", ErrNoLanguagesLeft
	}
	lang := missing[0]
	s.buffer[path] = append(entries, aas.LangString{Language: lang})
	return lang, nil
}

// RemoveLanguage drops one language entry from the property at path.
func (s *Session) RemoveLanguage(path, lang string) error {
	if s.state == StateViewing {
		return ErrNotEditing
	}
	entries, _, err := s.languageEntries(path)
	if err != nil {
		return err
	}
	out := entries[:0]
	for _, e := range entries {
		if e.Language != lang {
			out = append(out, e)
		}
	}
	s.buffer[path] = append([]aas.LangString(nil), out...)
	return nil
}

// SetLanguageText updates the text of one language entry at path.
// Duplicate languages within one property are impossible by construction:
// the entry must already exist.
func (s *Session) SetLanguageText(path, lang, text string) error {
	if s.state == StateViewing {
		return ErrNotEditing
	}
	entries, _, err := s.languageEntries(path)
	if err != nil {
		return err
	}
	if !aas.HasLanguage(entries, lang) {
		return fmt.Errorf("language %q not present at %q", lang, path)
	}
	for i := range entries {
		if entries[i].Language == lang {
			entries[i].Text = text
		}
	}
	s.buffer[path] = entries
	return nil
}

// Validate checks every buffered pair against its element's declared
// value type. A path that no longer resolves is skipped (logged, not
// fatal): the value is later submitted best-effort.
func (s *Session) Validate() []FieldError {
	var fields []FieldError
	for path, value := range s.buffer {
		el, ok := aas.Resolve(s.submodel, path)
		if !ok {
			s.log.Warn("edited path no longer resolves; skipping validation",
				zap.String("path", path))
			continue
		}
		prop, ok := el.(*aas.Property)
		if !ok {
			continue
		}
		if result := aas.Validate(value, prop.ValueType); !result.OK {
			fields = append(fields, FieldError{Path: path, Message: result.Message})
		}
	}
	return fields
}

// buildPatch formats every buffered value for the wire. Values whose
// element resolves to a typed Property are coerced via aas.Format;
// multi-language entries marshal as language/text pairs; everything else
// goes out as buffered.
func (s *Session) buildPatch() (map[string]any, error) {
	patch := make(map[string]any, len(s.buffer))
	for path, value := range s.buffer {
		el, ok := aas.Resolve(s.submodel, path)
		if !ok {
			patch[path] = value
			continue
		}
		switch typed := el.(type) {
		case *aas.Property:
			formatted, err := aas.Format(value, typed.ValueType)
			if err != nil {
				return nil, fmt.Errorf("format %s: %w", path, err)
			}
			patch[path] = formatted
		case *aas.MultiLanguageProperty:
			if entries, ok := value.([]aas.LangString); ok {
				out := make([]map[string]any, 0, len(entries))
				for _, e := range entries {
					out = append(out, map[string]any{"language": e.Language, "text": e.Text})
				}
				patch[path] = out
			} else {
				patch[path] = value
			}
		default:
			patch[path] = value
		}
	}
	return patch, nil
}

// SaveRequest is one validated batch ready for submission. It is built on
// the goroutine that owns the session and carries everything the network
// call needs, so the call itself can run anywhere.
type SaveRequest struct {
	AASID      string
	SubmodelID string
	Patch      map[string]any

	// sent snapshots the buffered values behind the patch, so FinishSave
	// can tell which paths were re-edited while the request was in flight.
	sent       map[string]any
	generation uint64
}

// StartSave validates the whole buffer and freezes it into a SaveRequest,
// moving the session to Saving.
//
// Any validation failure aborts with a *ValidationError carrying every
// failing path; the buffer is preserved and the session stays in Editing.
// A second save while one is in flight is rejected with ErrSaveInFlight.
// An empty buffer is a successful no-op: the session returns to Viewing
// and the request is nil.
func (s *Session) StartSave() (*SaveRequest, error) {
	switch s.state {
	case StateSaving:
		return nil, ErrSaveInFlight
	case StateViewing:
		return nil, ErrNotEditing
	}

	if fields := s.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	patch, err := s.buildPatch()
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		s.buffer = nil
		s.state = StateViewing
		return nil, nil
	}

	sent := make(map[string]any, len(s.buffer))
	for path, value := range s.buffer {
		sent[path] = value
	}
	s.state = StateSaving
	return &SaveRequest{
		AASID:      s.aasID,
		SubmodelID: s.submodel.ID,
		Patch:      patch,
		sent:       sent,
		generation: s.generation,
	}, nil
}

// FinishSave applies the outcome of a submitted request, on the goroutine
// that owns the session. It reports false when the session was cancelled
// while the request was in flight: the buffer is gone and the stale
// result, success or failure, must not touch it.
//
// A transport failure keeps the buffer and returns the session to
// Editing. On success the saved values leave the buffer; edits made while
// the request was in flight stay pending, and only an empty buffer
// returns the session to Viewing.
func (s *Session) FinishSave(req *SaveRequest, err error) (bool, error) {
	if s.generation != req.generation {
		s.log.Debug("ignoring save result after cancel",
			zap.String("submodel", req.SubmodelID))
		return false, nil
	}

	if err != nil {
		s.state = StateEditing
		return true, fmt.Errorf("save submodel %s: %w", req.SubmodelID, err)
	}

	for path, value := range req.sent {
		if reflect.DeepEqual(s.buffer[path], value) {
			delete(s.buffer, path)
		}
	}
	if len(s.buffer) == 0 {
		s.buffer = nil
		s.state = StateViewing
	} else {
		s.state = StateEditing
	}
	s.generation++
	return true, nil
}

// Save submits the buffer synchronously: StartSave, the network call, and
// FinishSave in one blocking sequence. The interactive browser drives the
// phases itself so the call can run off its event loop.
func (s *Session) Save(ctx context.Context, saver Saver) error {
	req, err := s.StartSave()
	if err != nil || req == nil {
		return err
	}
	_, err = s.FinishSave(req, saver.UpdateSubmodelData(ctx, req.AASID, req.SubmodelID, req.Patch))
	return err
}
