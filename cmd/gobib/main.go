package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gobib "github.com/reoring/gobib"
	"github.com/reoring/gobib/bibtex"
	"github.com/reoring/gobib/bibyaml"
	"github.com/reoring/gobib/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "fmt":
		fmtCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "gobib CLI\n\nUsage:\n  gobib check [-lang en|fr] file.bib [file2.bib ...]\n  gobib fmt [-lang en|fr] [-o out.bib] file.{bib,yaml}\n\nNotes:\n  - check reports validation problems and exits non-zero when any are found.\n  - fmt parses the input and writes normalized BibTeX (stdout by default).")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var lang string
	fs.StringVar(&lang, "lang", "", "diagnostic language (en, fr)")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	setLanguage(lang)

	total := 0
	for _, path := range fs.Args() {
		var collect gobib.Collect
		_, err := load(path, &collect)
		if err != nil {
			fatalf("%s: %v", path, err)
		}
		for _, it := range collect.Issues {
			fmt.Fprintf(os.Stderr, "%s: %s at %s: %s\n", path, it.Code, it.Path, it.Message)
		}
		total += len(collect.Issues)
	}
	if total > 0 {
		fatalf("%d problem(s) found", total)
	}
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var lang string
	var out string
	fs.StringVar(&lang, "lang", "", "diagnostic language (en, fr)")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	setLanguage(lang)

	col, err := load(fs.Arg(0), gobib.WriteTo(os.Stderr))
	if err != nil {
		fatalf("%s: %v", fs.Arg(0), err)
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			fatalf("creating output: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := bibtex.NewWriter(w, bibtex.WriteOpt{Sink: gobib.WriteTo(os.Stderr)}).Write(col); err != nil {
		fatalf("writing output: %v", err)
	}
}

// load parses path as YAML or BibTeX depending on its extension.
func load(path string, sink gobib.Sink) (*gobib.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return bibyaml.Read(f, bibyaml.Opt{Record: gobib.RecordOpt{Sink: sink}})
	default:
		p := bibtex.NewParser(bibtex.ParseOpt{Sink: sink})
		return p.Parse(context.Background(), f)
	}
}

func setLanguage(lang string) {
	if lang != "" {
		i18n.SetLanguage(lang)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
