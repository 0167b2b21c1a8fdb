package bibtex

// EntrySchema lists the required and optional fields of one BibTeX entry
// kind, in emission order.
type EntrySchema struct {
	Doc      string
	Required []string
	Optional []string
}

var entryTypes = map[string]EntrySchema{
	"article": {
		Doc:      "An article from a journal or magazine.",
		Required: []string{"author", "title", "journal", "year", "volume"},
		Optional: []string{"number", "pages", "month", "doi"},
	},
	"book": {
		Doc:      "A book with an explicit publisher.",
		Required: []string{"author", "title", "publisher", "year"},
		Optional: []string{"editor", "volume", "number", "series", "address", "edition", "month"},
	},
	"booklet": {
		Doc:      "A work that is printed and bound, but without a named publisher or sponsoring institution.",
		Required: []string{"title"},
		Optional: []string{"author", "howpublished", "address", "month", "year"},
	},
	"inbook": {
		Doc:      "A part of a book, usually untitled. May be a chapter (or section, etc.) and/or a range of pages.",
		Required: []string{"author", "title", "pages", "publisher", "year"},
		Optional: []string{"editor", "chapter", "volume", "number", "series", "type", "address", "edition", "month"},
	},
	"incollection": {
		Doc:      "A part of a book having its own title.",
		Required: []string{"author", "title", "booktitle", "publisher", "year"},
		Optional: []string{"editor", "volume", "number", "series", "type", "chapter", "pages", "address", "edition", "month"},
	},
	"inproceedings": {
		Doc:      "An article in a conference proceedings.",
		Required: []string{"author", "title", "booktitle", "year"},
		Optional: []string{"editor", "volume", "number", "series", "pages", "address", "month", "organization", "publisher"},
	},
	"manual": {
		Doc:      "Technical documentation.",
		Required: []string{"title"},
		Optional: []string{"author", "organization", "address", "edition", "month", "year"},
	},
	"mastersthesis": {
		Doc:      "A Master's thesis.",
		Required: []string{"author", "title", "school", "year"},
		Optional: []string{"type", "address", "month"},
	},
	"misc": {
		Doc:      "For use when nothing else fits.",
		Required: []string{},
		Optional: []string{"author", "title", "howpublished", "month", "year"},
	},
	"phdthesis": {
		Doc:      "A Ph.D. thesis.",
		Required: []string{"author", "title", "school", "year"},
		Optional: []string{"type", "address", "month"},
	},
	"proceedings": {
		Doc:      "The proceedings of a conference.",
		Required: []string{"title", "year"},
		Optional: []string{"editor", "volume", "number", "series", "address", "month", "publisher", "organization"},
	},
	"techreport": {
		Doc:      "A report published by a school or other institution, usually numbered within a series.",
		Required: []string{"author", "title", "institution", "year"},
		Optional: []string{"type", "number", "address", "month"},
	},
	"unpublished": {
		Doc:      "A document having an author and title, but not formally published.",
		Required: []string{"author", "title"},
		Optional: []string{"month", "year"},
	},
}

// EntryType looks up the schema for a BibTeX entry kind tag such as
// "article".
func EntryType(tag string) (EntrySchema, bool) {
	es, ok := entryTypes[tag]
	return es, ok
}
