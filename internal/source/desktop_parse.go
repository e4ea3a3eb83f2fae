// SPDX-License-Identifier: MPL-2.0

package source

import (
	"strings"
)

type (
	// fieldValue holds one desktop-entry key: its default value plus any
	// localized variants keyed by locale tag ("Name[pt_BR]" stores under
	// "pt_BR").
	fieldValue struct {
		value      string
		hasValue   bool
		attributes map[string]string
	}

	// section is one "[Header]" block of a desktop file.
	section struct {
		header string
		fields map[string]*fieldValue
	}

	// sectionReader accumulates lines into sections. A section is emitted
	// when the next header begins; the final section is flushed by finish.
	sectionReader struct {
		current section
	}
)

// push consumes one raw line. It returns a completed section when the line
// opens a new one.
func (r *sectionReader) push(raw string) (section, bool) {
	line := strings.TrimSpace(raw)
	switch {
	case line == "" || strings.HasPrefix(line, "#"):
		return section{}, false
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		header := line[1 : len(line)-1]
		done := r.current
		r.current = section{header: header}
		if done.isBlank() {
			return section{}, false
		}
		return done, true
	default:
		key, value, found := strings.Cut(line, "=")
		if !found {
			// Not a header, comment, or key. The freedesktop spec has no
			// other line kinds, so skip it.
			return section{}, false
		}
		r.current.setField(strings.TrimSpace(key), strings.TrimSpace(value))
		return section{}, false
	}
}

// finish flushes the trailing section, if any.
func (r *sectionReader) finish() (section, bool) {
	done := r.current
	r.current = section{}
	return done, !done.isBlank()
}

func (s *section) isBlank() bool {
	return s.header == "" && len(s.fields) == 0
}

// setField records key=value, splitting a "Key[locale]" key into the base
// key plus a localized attribute. Duplicate keys keep the last value.
func (s *section) setField(rawKey, value string) {
	key := rawKey
	attribute := ""
	if base, rest, found := strings.Cut(rawKey, "["); found {
		if attr, ok := strings.CutSuffix(rest, "]"); ok {
			key = base
			attribute = attr
		}
	}

	if s.fields == nil {
		s.fields = make(map[string]*fieldValue)
	}
	ent := s.fields[key]
	if ent == nil {
		ent = &fieldValue{}
		s.fields[key] = ent
	}
	if attribute != "" {
		if ent.attributes == nil {
			ent.attributes = make(map[string]string)
		}
		ent.attributes[attribute] = value
		return
	}
	ent.value = value
	ent.hasValue = true
}

// field returns the default (non-localized) value for key.
func (s *section) field(key string) (string, bool) {
	ent := s.fields[key]
	if ent == nil || !ent.hasValue {
		return "", false
	}
	return ent.value, true
}

// name returns the display name, preferring the variant localized for lang
// and falling back to the default Name.
func (s *section) name(lang string) (string, bool) {
	ent := s.fields["Name"]
	if ent == nil {
		return "", false
	}
	if lang != "" {
		if localized, ok := ent.attributes[lang]; ok {
			return localized, true
		}
	}
	if !ent.hasValue {
		return "", false
	}
	return ent.value, true
}

// boolField interprets a desktop-entry boolean. The format writes "true"
// and "false"; anything starting with t or T counts as true.
func (s *section) boolField(key string) bool {
	val, ok := s.field(key)
	if !ok {
		return false
	}
	return strings.HasPrefix(val, "t") || strings.HasPrefix(val, "T")
}

// terminal reports whether the application wants a terminal.
func (s *section) terminal() bool {
	return s.boolField("Terminal")
}

// hidden reports whether the section should not be shown to the user,
// covering both Hidden (uninstalled) and NoDisplay (not for menus).
func (s *section) hidden() bool {
	return s.boolField("Hidden") || s.boolField("NoDisplay")
}

// command returns the launch command line: TryExec when present, else Exec.
func (s *section) command() (string, bool) {
	if tryExec, ok := s.field("TryExec"); ok {
		return tryExec, true
	}
	return s.field("Exec")
}

// stripFieldCodes removes freedesktop %-expansions from a parsed command
// line. Quiver launches entries without files or URLs, so placeholder
// tokens like %U are dropped and a literal %% collapses to %.
func stripFieldCodes(argv []string) []string {
	out := argv[:0]
	for _, tok := range argv {
		if len(tok) == 2 && tok[0] == '%' {
			if tok[1] == '%' {
				out = append(out, "%")
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}
