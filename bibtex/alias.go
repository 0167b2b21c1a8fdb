package bibtex

// aliasEntry maps one canonical BibTeX field name to the alternate names a
// record may carry the value under. Order matters twice over: the writer
// walks the table in this order when sweeping for not-yet-emitted canonical
// fields, and within one entry the first present alias wins.
type aliasEntry struct {
	canonical string
	aliases   []string
}

var fieldAliases = []aliasEntry{
	{"address", []string{"conference_location"}},
	{"author", []string{"authors"}},
	{"booktitle", []string{"publication_title"}},
	{"chapter", nil},
	{"crossref", nil},
	{"doi", nil},
	{"edition", nil},
	{"editor", nil},
	{"howpublished", nil},
	{"institution", nil},
	{"journal", []string{"publication_title"}},
	{"month", []string{"publication_month", "conference_month"}},
	{"number", []string{"issue", "is_number"}},
	{"organization", nil},
	{"pages", nil},
	{"publisher", nil},
	{"school", nil},
	{"series", nil},
	{"title", nil},
	{"type", nil},
	{"volume", nil},
	{"year", []string{"publication_year", "conference_year"}},
}

// Aliases returns the accepted alternate names for a canonical field name.
func Aliases(canonical string) []string {
	for _, e := range fieldAliases {
		if e.canonical == canonical {
			return e.aliases
		}
	}
	return nil
}
