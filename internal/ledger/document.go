package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

var validate = validator.New()

// Document is the persisted form of a ledger, keyed by course ID.
type Document map[string]CourseEntry

// CourseEntry is one course in a Document.
type CourseEntry struct {
	Information  domain.CourseInfo                    `json:"Information"`
	Registration map[string]domain.RegistrationRecord `json:"Registration"`
}

// Document returns a detached copy of the ledger in its persisted form.
func (l *Ledger) Document() Document {
	doc := make(Document, len(l.courses))
	for id, e := range l.courses {
		roster := make(map[string]domain.RegistrationRecord, len(e.roster))
		for sid, rec := range e.roster {
			roster[sid] = rec
		}
		doc[id] = CourseEntry{Information: e.info.Clone(), Registration: roster}
	}
	return doc
}

// FromDocument validates doc and replaces the ledger state with it. On error
// the ledger is left unchanged.
func (l *Ledger) FromDocument(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	courses := make(map[string]*entry, len(doc))
	byStudent := make(map[string]map[string]struct{})
	for id, ce := range doc {
		roster := make(map[string]domain.RegistrationRecord, len(ce.Registration))
		for sid, rec := range ce.Registration {
			roster[sid] = rec
			set, ok := byStudent[sid]
			if !ok {
				set = make(map[string]struct{})
				byStudent[sid] = set
			}
			set[id] = struct{}{}
		}
		courses[id] = &entry{info: ce.Information.Clone(), roster: roster}
	}

	l.courses = courses
	l.byStudent = byStudent
	return nil
}

// Validate checks every course entry, lesson slot and registration record.
func (d Document) Validate() error {
	for id, ce := range d {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty course ID", ErrInvalidDocument)
		}
		if err := validate.Struct(ce.Information); err != nil {
			return fmt.Errorf("%w: course %s: %v", ErrInvalidDocument, id, err)
		}
		for label, slot := range ce.Information.Time {
			if err := validate.Struct(slot); err != nil {
				return fmt.Errorf("%w: course %s lesson %s: %v", ErrInvalidDocument, id, label, err)
			}
		}
		for sid, rec := range ce.Registration {
			if strings.TrimSpace(sid) == "" {
				return fmt.Errorf("%w: course %s: empty student ID", ErrInvalidDocument, id)
			}
			if err := validate.Struct(rec); err != nil {
				return fmt.Errorf("%w: course %s student %s: %v", ErrInvalidDocument, id, sid, err)
			}
		}
	}
	return nil
}

func (d Document) validateGrades() error {
	for id, ce := range d {
		for sid, rec := range ce.Registration {
			if !domain.IsGraded(rec.Grade) {
				continue
			}
			if err := domain.ValidateGrade(rec.Grade); err != nil {
				return fmt.Errorf("%w: course %s student %s: %v", ErrInvalidDocument, id, sid, err)
			}
		}
	}
	return nil
}

// Save writes the whole ledger as one JSON document. Grades that Load would
// reject fail with ErrInvalidDocument before anything is written.
func (l *Ledger) Save(w io.Writer) error {
	doc := l.Document()
	if err := doc.validateGrades(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	return nil
}

// Load replaces the ledger state with the JSON document read from r.
// Malformed or invalid documents are rejected with ErrInvalidDocument.
func (l *Ledger) Load(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after document", ErrInvalidDocument)
	}

	if err := l.FromDocument(doc); err != nil {
		return err
	}

	l.logger.Debug("ledger loaded", "course_count", len(l.courses))
	return nil
}
