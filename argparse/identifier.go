package argparse

import "strings"

// ID is the short and/or long name of an option or flag.
// A zero Short or an empty Long means that form is absent.
type ID struct {
	Short rune
	Long  string
}

// Short returns an ID with only a short form.
func Short(c rune) ID { return ID{Short: c} }

// Long returns an ID with only a long form.
func Long(name string) ID { return ID{Long: name} }

// HasShort reports whether the short form is set.
func (id ID) HasShort() bool { return id.Short != 0 }

// HasLong reports whether the long form is set.
func (id ID) HasLong() bool { return id.Long != "" }

// Empty reports whether neither form is set.
func (id ID) Empty() bool { return !id.HasShort() && !id.HasLong() }

// ShortForm returns the short form prefixed with a single dash, e.g. "-i".
func (id ID) ShortForm() string {
	if !id.HasShort() {
		return ""
	}
	return "-" + string(id.Short)
}

// LongForm returns the long form prefixed with two dashes, e.g. "--int".
func (id ID) LongForm() string {
	if !id.HasLong() {
		return ""
	}
	return "--" + id.Long
}

// String returns "-i/--int", or just the form that is set.
func (id ID) String() string {
	switch {
	case id.HasShort() && id.HasLong():
		return id.ShortForm() + "/" + id.LongForm()
	case id.HasShort():
		return id.ShortForm()
	default:
		return id.LongForm()
	}
}

// Overlaps reports whether the two IDs share their short or their long form.
func (id ID) Overlaps(other ID) bool {
	return (id.HasShort() && id.Short == other.Short) || (id.HasLong() && id.Long == other.Long)
}

// Matches reports whether token addresses id.
//
// A short id c matches every token starting with "-c", which covers "-cValue",
// "-c=Value" and "-c". A long id matches "--name" exactly or any token
// starting with "--name=".
func (id ID) Matches(token string) bool {
	if id.HasShort() && strings.HasPrefix(token, id.ShortForm()) {
		return true
	}
	if id.HasLong() {
		long := id.LongForm()
		if token == long || strings.HasPrefix(token, long+"=") {
			return true
		}
	}
	return false
}

// form is one dash-prefixed spelling of an ID, used while extracting values.
type form struct {
	id     ID
	prefix string
}

func (id ID) shortOnly() form { return form{id: ID{Short: id.Short}, prefix: id.ShortForm()} }
func (id ID) longOnly() form  { return form{id: ID{Long: id.Long}, prefix: id.LongForm()} }
