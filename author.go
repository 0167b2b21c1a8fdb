package gobib

import (
	"fmt"
	"strings"
	"unicode"
)

// Author is one author name split into surname and forenames. Constructed
// values are immutable.
//
// Accepted input shapes, matching common bibliographic conventions:
//
//	NewAuthor([]string{"Smith", "John", "Junior"})
//	NewAuthor("Smith, John Junior")
//	NewAuthor("John Junior Smith")
type Author struct {
	name      string
	forenames []string
}

// NewAuthor parses an author from a pre-split sequence or from a string.
// An unparseable shape (more than one comma, unsupported type) is a hard
// failure: no partial Author exists.
//
// When parsing from a string, whitespace-split tokens of length <= 1 are
// discarded before surname/forename assignment. Bare initials therefore never
// survive string parsing; pass a pre-split sequence to keep them.
func NewAuthor(value any) (Author, error) {
	switch v := value.(type) {
	case Author:
		return v, nil
	case []string:
		if len(v) == 0 {
			return Author{}, Issues{{Path: "/", Code: CodeInvalidFormat, Message: "empty author sequence"}}
		}
		fore := make([]string, len(v)-1)
		copy(fore, v[1:])
		return Author{name: v[0], forenames: fore}, nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			s, ok := p.(string)
			if !ok {
				return Author{}, Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("cannot construct Author from %T element", p)}}
			}
			parts = append(parts, s)
		}
		return NewAuthor(parts)
	case string:
		return authorFromString(v)
	default:
		return Author{}, Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("cannot construct Author from %T", value)}}
	}
}

func authorFromString(s string) (Author, error) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 2:
		return Author{
			name:      strings.TrimSpace(parts[0]),
			forenames: splitForenames(parts[1]),
		}, nil
	case 1:
		tokens := splitForenames(s)
		if len(tokens) == 0 {
			return Author{}, Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("invalid author name: %q", s)}}
		}
		return Author{
			name:      tokens[len(tokens)-1],
			forenames: tokens[:len(tokens)-1],
		}, nil
	default:
		return Author{}, Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("invalid author name: %q", s)}}
	}
}

// splitForenames splits on spaces, trims, and drops tokens of length <= 1.
func splitForenames(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, " ") {
		tok = strings.TrimSpace(tok)
		if len(tok) > 1 {
			out = append(out, tok)
		}
	}
	return out
}

// Name returns the surname.
func (a Author) Name() string { return a.name }

// Forenames returns the forenames in order.
func (a Author) Forenames() []string {
	out := make([]string, len(a.forenames))
	copy(out, a.forenames)
	return out
}

// Initial returns the first character of the surname, uppercased.
func (a Author) Initial() string {
	for _, r := range a.name {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// String renders "Surname, Forename1 Forename2 ...".
func (a Author) String() string {
	return a.name + ", " + strings.Join(a.forenames, " ")
}

// AuthorList is an ordered list of Authors.
type AuthorList []Author

// NewAuthorList builds an AuthorList from a slice of Author values or author
// strings, or from a single string of author names joined by " and ". Any
// element failing Author construction fails the whole list.
func NewAuthorList(value any) (AuthorList, error) {
	switch v := value.(type) {
	case AuthorList:
		out := make(AuthorList, len(v))
		copy(out, v)
		return out, nil
	case []Author:
		out := make(AuthorList, len(v))
		copy(out, v)
		return out, nil
	case []string:
		out := make(AuthorList, 0, len(v))
		for _, s := range v {
			a, err := NewAuthor(s)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	case []any:
		out := make(AuthorList, 0, len(v))
		for _, e := range v {
			a, err := NewAuthor(e)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	case string:
		segs := strings.Split(v, " and ")
		out := make(AuthorList, 0, len(segs))
		for _, s := range segs {
			a, err := NewAuthor(s)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	default:
		return nil, Issues{{Path: "/", Code: CodeInvalidFormat, Message: fmt.Sprintf("cannot construct AuthorList from %T", value)}}
	}
}

// String renders the authors joined by " and ".
func (l AuthorList) String() string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = a.String()
	}
	return strings.Join(parts, " and ")
}
