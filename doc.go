package gobib

// Package gobib provides:
//
// - Schema-driven validation of bibliographic records (field specification
//   tables with coercion, bounds, validators and allowed-value sets)
// - A stable diagnostic model via Issues (field path, code, message) with an
//   injectable Sink so callers decide whether diagnostics are collected,
//   printed or dropped
// - Record and Collection value types shared by every record format in the
//   module (BibTeX entries, search results, YAML imports)
// - Shared bibliographic primitives: authors, DOIs, ISBN/ISSN checksums
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place the BibTeX codec under bibtex/, alternative record sources under
//   xplore/ and bibyaml/, and the CLI under cmd/gobib.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	rec := gobib.RecordFrom(bibtex.Fields(), raw, gobib.RecordOpt{Sink: sink})
//	col, _ := bibtex.NewParser(bibtex.ParseOpt{Sink: sink}).Parse(ctx, r)
//	_ = bibtex.NewWriter(w, bibtex.WriteOpt{Sink: sink}).Write(col)
