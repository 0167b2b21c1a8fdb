package bibtex

import (
	"context"
	"io"
	"regexp"
	"strings"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/i18n"
	"github.com/reoring/gobib/internal/scan"
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	// Sink receives the parser's own diagnostics (stray characters,
	// unexpected end of input). Nil means Discard().
	Sink gobib.Sink
	// Record configures the records the parser constructs. When Record.Sink
	// is nil the parser's Sink is used, so one sink sees the whole trail.
	Record gobib.RecordOpt
	// MaxDepth bounds group nesting; deeper braces, openers and their
	// closers alike, are taken literally. 0 means defaultMaxDepth.
	MaxDepth int
}

const defaultMaxDepth = 64

// Parser turns BibTeX text into a Collection of validated Records. A Parser
// is stateless between calls; all scan state lives in the per-call cursor,
// so one Parser may serve sequential parses and distinct Parsers may run
// concurrently on independent streams.
type Parser struct {
	opt ParseOpt
}

// NewParser creates a Parser with the given options.
func NewParser(opt ParseOpt) *Parser {
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = defaultMaxDepth
	}
	if opt.Record.Sink == nil {
		opt.Record.Sink = opt.Sink
	}
	return &Parser{opt: opt}
}

func (p *Parser) sink() gobib.Sink {
	if p.opt.Sink == nil {
		return gobib.Discard()
	}
	return p.opt.Sink
}

// File-scope scanner states.
const (
	stOutside = iota
	stEntryType
	stComment
)

// Entry-scope scanner states.
const (
	stEntryOutside = iota
	stEntryComment
	stFieldName
	stFieldValue
)

// Parse consumes r to the end and returns every entry it could recognize.
// Malformed input is never fatal: stray characters and truncated entries are
// reported to the sink and parsing moves on. The returned error is non-nil
// only for transport failures or context cancellation.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*gobib.Collection, error) {
	cur := scan.New(r)
	col := gobib.NewCollection(Fields())

	mode, prev := stOutside, stOutside
	var entryType strings.Builder

	for {
		b, err := cur.Next()
		if err == io.EOF {
			if mode == stEntryType {
				p.reportEOF(cur)
			}
			return col, nil
		}
		if err != nil {
			return col, gobib.Issues{{Path: "/", Code: gobib.CodeParseError, Message: err.Error(), Cause: err, Offset: cur.Offset()}}
		}

		switch mode {
		case stOutside:
			switch {
			case isSpace(b):
			case b == '@':
				if err := ctx.Err(); err != nil {
					return col, err
				}
				mode = stEntryType
				entryType.Reset()
			case b == '%':
				prev = mode
				mode = stComment
			default:
				p.sink().Report(gobib.Issue{
					Path:    "/",
					Code:    gobib.CodeUnexpectedChar,
					Message: i18n.T(gobib.CodeUnexpectedChar, nil),
					Offset:  cur.Offset() - 1,
					Params:  map[string]any{"char": string(b)},
				})
			}
		case stComment:
			if b == '\n' {
				mode = prev
			}
		case stEntryType:
			switch b {
			case '{':
				tag := strings.ToLower(strings.TrimSpace(entryType.String()))
				col.Append(p.parseEntry(cur, tag))
				mode = stOutside
			case '%':
				prev = mode
				mode = stComment
			default:
				entryType.WriteByte(b)
			}
		}
	}
}

// parseEntry parses one entry body, the entry type tag and the opening brace
// already consumed. End of input inside the entry yields the fields parsed so
// far as a valid, if incomplete, Record.
func (p *Parser) parseEntry(cur *scan.Cursor, entryType string) *gobib.Record {
	rec := gobib.NewRecord(Fields(), p.opt.Record)
	rec.Set("content_type", entryType)

	mode, prev := stEntryOutside, stEntryOutside
	escaped := false
	var name, value strings.Builder

	store := func() {
		rec.Set(strings.TrimSpace(name.String()), strings.TrimSpace(value.String()))
	}

	for {
		b, err := cur.Next()
		if err != nil {
			p.reportEOF(cur)
			return rec
		}

		switch mode {
		case stEntryOutside:
			switch {
			case b == '}':
				return rec
			case isSpace(b):
			case b == '%':
				prev = mode
				mode = stEntryComment
			case isNameChar(b):
				mode = stFieldName
				name.Reset()
				name.WriteByte(b)
			}
		case stEntryComment:
			if b == '\n' {
				mode = prev
			}
		case stFieldName:
			switch b {
			case '}':
				// Bare key rule: a lone token is the explicit citation key.
				rec.Set("key", strings.TrimSpace(name.String()))
				return rec
			case '=':
				mode = stFieldValue
				value.Reset()
				escaped = false
			case ',':
				rec.Set("key", strings.TrimSpace(name.String()))
				mode = stEntryOutside
			case '%':
				name.WriteByte(' ')
				prev = mode
				mode = stEntryComment
			default:
				name.WriteByte(b)
			}
		case stFieldValue:
			if escaped {
				value.WriteByte(b)
				escaped = false
				continue
			}
			switch b {
			case '\\':
				escaped = true
			case '}':
				store()
				return rec
			case ',':
				store()
				mode = stEntryOutside
			case '%':
				prev = mode
				mode = stEntryComment
			case '{':
				value.WriteString(p.parseGroup(cur))
			default:
				value.WriteByte(b)
			}
		}
	}
}

var wsRunRe = regexp.MustCompile(`\s+`)

// parseGroup reads a brace group, its opening brace already consumed, up to
// the matching unescaped closing brace. Nested groups are preserved verbatim
// inside literal braces; only the delimiters of the whole group are stripped.
// Whitespace runs are collapsed to a single space per nesting level.
//
// Nesting is tracked with an explicit frame stack instead of recursion, so
// adversarial brace depth cannot exhaust the goroutine stack and escape and
// comment state is shared unambiguously across levels.
func (p *Parser) parseGroup(cur *scan.Cursor) string {
	stack := []*strings.Builder{{}}
	escaped := false
	commented := false
	// Opening braces past MaxDepth are written literally instead of pushing a
	// frame; skipped counts them so their closers are written literally too.
	skipped := 0

	top := func() *strings.Builder { return stack[len(stack)-1] }

	for {
		b, err := cur.Next()
		if err != nil {
			p.reportEOF(cur)
			// Unwind: wrap every unterminated inner level back into its
			// parent so the partial text is returned as-is.
			for len(stack) > 1 {
				text := wsRunRe.ReplaceAllString(top().String(), " ")
				stack = stack[:len(stack)-1]
				top().WriteString("{" + text + "}")
			}
			return wsRunRe.ReplaceAllString(top().String(), " ")
		}

		if commented {
			if b == '\n' {
				commented = false
			}
			continue
		}
		if escaped {
			top().WriteByte(b)
			escaped = false
			continue
		}

		switch b {
		case '\\':
			top().WriteByte('\\')
			escaped = true
		case '%':
			commented = true
		case '}':
			if skipped > 0 {
				top().WriteByte('}')
				skipped--
				continue
			}
			text := wsRunRe.ReplaceAllString(top().String(), " ")
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return text
			}
			top().WriteString("{" + text + "}")
		case '{':
			if len(stack) >= p.opt.MaxDepth {
				top().WriteByte('{')
				skipped++
				continue
			}
			stack = append(stack, &strings.Builder{})
		default:
			top().WriteByte(b)
		}
	}
}

func (p *Parser) reportEOF(cur *scan.Cursor) {
	p.sink().Report(gobib.Issue{
		Path:    "/",
		Code:    gobib.CodeUnexpectedEOF,
		Message: i18n.T(gobib.CodeUnexpectedEOF, nil),
		Offset:  cur.Offset(),
	})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

// isNameChar admits ASCII alphanumerics plus any non-ASCII byte, so UTF-8
// field names pass through unmangled.
func isNameChar(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0x80
}
