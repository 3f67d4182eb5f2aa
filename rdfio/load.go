package rdfio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/deiu/rdf2go"
	"github.com/knakk/rdf"

	"github.com/c360studio/fabriconv/errors"
	"github.com/c360studio/fabriconv/types"
)

// baseURI anchors relative references during parsing. Converted output only
// ever sees absolute URIs.
const baseURI = "http://fabriconv.local/"

// Loader parses RDF documents into rdf2go graphs, with an optional memory
// pre-flight for file inputs.
type Loader struct {
	// Guard, when set, is consulted before loading files.
	Guard types.MemoryGuard

	// Force bypasses the memory guard, keeping its warning.
	Force bool
}

// LoadFile parses the file at path, inferring the format from its extension.
// The returned message carries the memory guard's explanation when one ran.
func (l *Loader) LoadFile(path string) (*rdf2go.Graph, string, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return nil, "", errors.WrapFatal(
			fmt.Errorf("%w: unrecognized extension on %q", errors.ErrUnsupportedFormat, path),
			"Loader", "LoadFile", "detect format")
	}

	var message string
	if l.Guard != nil {
		info, err := os.Stat(path)
		if err != nil {
			return nil, "", errors.WrapFatal(err, "Loader", "LoadFile", "stat input file")
		}
		sizeMB := float64(info.Size()) / (1024 * 1024)
		ok, msg := l.Guard.Check(sizeMB, l.Force)
		message = msg
		if !ok {
			return nil, message, errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrInsufficientMemory, msg),
				"Loader", "LoadFile", "memory pre-flight")
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, message, errors.WrapFatal(err, "Loader", "LoadFile", "open input file")
	}
	defer f.Close()

	g, err := l.Load(f, format)
	return g, message, err
}

// Load parses a document in the given format into a fresh graph.
func (l *Loader) Load(r io.Reader, format Format) (*rdf2go.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapFatal(err, "Loader", "Load", "read input")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.WrapFatal(errors.ErrEmptyInput, "Loader", "Load", "check input")
	}

	g := rdf2go.NewGraph(baseURI)
	switch format {
	case FormatTurtle, FormatNTriples, FormatN3:
		// N-Triples is a Turtle subset; the RDF subset of Notation3 parses
		// as Turtle as well.
		err = g.Parse(bytes.NewReader(data), "text/turtle")
	case FormatJSONLD:
		err = g.Parse(bytes.NewReader(data), "application/ld+json")
	case FormatTriG:
		err = g.Parse(bytes.NewReader(stripGraphBlocks(data)), "text/turtle")
	case FormatRDFXML:
		err = loadRDFXML(g, data)
	case FormatNQuads:
		err = loadNQuads(g, data)
	default:
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, format),
			"Loader", "Load", "dispatch format")
	}
	if err != nil {
		if errors.IsFatal(err) {
			return nil, err
		}
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrParsingFailed, err),
			"Loader", "Load", "parse "+format.String())
	}

	if g.Len() == 0 {
		return nil, errors.WrapFatal(errors.ErrNoTriples, "Loader", "Load", "check graph")
	}
	return g, nil
}

// loadRDFXML decodes RDF/XML and folds the triples into g.
func loadRDFXML(g *rdf2go.Graph, data []byte) error {
	dec := rdf.NewTripleDecoder(bytes.NewReader(data), rdf.RDFXML)
	triples, err := dec.DecodeAll()
	if err != nil {
		return err
	}
	for _, t := range triples {
		g.AddTriple(knakkTerm(t.Subj), knakkTerm(t.Pred), knakkTerm(t.Obj))
	}
	return nil
}

func knakkTerm(t rdf.Term) rdf2go.Term {
	switch term := t.(type) {
	case rdf.IRI:
		return rdf2go.NewResource(term.String())
	case rdf.Blank:
		return rdf2go.NewBlankNode(stripBlankPrefix(term.String()))
	case rdf.Literal:
		if dt := term.DataType.String(); dt != "" && dt != "http://www.w3.org/2001/XMLSchema#string" {
			return rdf2go.NewLiteralWithDatatype(term.String(), rdf2go.NewResource(dt))
		}
		return rdf2go.NewLiteral(term.String())
	default:
		return rdf2go.NewLiteral(t.String())
	}
}

// loadNQuads decodes N-Quads and folds the triples into g, discarding graph
// labels: the compilation set is the union of all named graphs.
func loadNQuads(g *rdf2go.Graph, data []byte) error {
	r := nquads.NewReader(bytes.NewReader(data), false)
	for {
		q, err := r.ReadQuad()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s := quadTerm(q.Subject)
		p := quadTerm(q.Predicate)
		o := quadTerm(q.Object)
		if s == nil || p == nil || o == nil {
			continue
		}
		g.AddTriple(s, p, o)
	}
}

func quadTerm(v quad.Value) rdf2go.Term {
	switch val := v.(type) {
	case quad.IRI:
		return rdf2go.NewResource(string(val))
	case quad.BNode:
		return rdf2go.NewBlankNode(string(val))
	case quad.TypedString:
		return rdf2go.NewLiteralWithDatatype(string(val.Value), rdf2go.NewResource(string(val.Type)))
	case quad.LangString:
		return rdf2go.NewLiteralWithLanguage(string(val.Value), val.Lang)
	case quad.String:
		return rdf2go.NewLiteral(string(val))
	default:
		if v == nil {
			return nil
		}
		return rdf2go.NewLiteral(quad.StringOf(v))
	}
}

func stripBlankPrefix(s string) string {
	if len(s) > 2 && s[0] == '_' && s[1] == ':' {
		return s[2:]
	}
	return s
}
