package io

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

// gmlValue is a scalar (int, float64 or string) or a nested list.
type gmlValue struct {
	scalar any
	list   []gmlPair
}

type gmlPair struct {
	key   string
	value gmlValue
}

// ReadGML decodes a GML graph from r. ReadGML does not close r.
func ReadGML(r io.Reader, opts ...Option) (*netgraph.Graph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read GML")
	}
	p := &gmlParser{lex: newGMLLexer(string(src))}
	top, err := p.parseList(false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse GML")
	}

	var body []gmlPair
	for _, kv := range top {
		if kv.key == "graph" && kv.value.list != nil {
			body = kv.value.list
			break
		}
	}
	if body == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "GML input has no graph [...] block")
	}
	return buildGML(body, newReadOptions(opts))
}

func buildGML(body []gmlPair, ro readOptions) (*netgraph.Graph, error) {
	directed := false
	for _, kv := range body {
		if kv.key == "directed" {
			if v, ok := kv.value.scalar.(int); ok {
				directed = v != 0
			}
		}
	}
	g := netgraph.New(directed)

	ids := map[string]string{} // GML id -> node ID
	for _, kv := range body {
		if kv.key != "node" || kv.value.list == nil {
			continue
		}
		n := netgraph.Node{Color: ro.nodeColor, Attrs: netgraph.Attrs{}}
		var gmlID string
		for _, f := range kv.value.list {
			if f.value.list != nil {
				continue
			}
			switch f.key {
			case "id":
				gmlID = scalarString(f.value.scalar)
			case "name":
				n.ID = scalarString(f.value.scalar)
			case "label":
				n.Label = scalarString(f.value.scalar)
			case "color":
				if c, err := netgraph.ParseColor(scalarString(f.value.scalar)); err == nil {
					n.Color = c
					continue
				}
				n.Attrs[f.key] = f.value.scalar
			default:
				n.Attrs[f.key] = f.value.scalar
			}
		}
		if gmlID == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "GML node without id")
		}
		if n.ID == "" {
			n.ID = gmlID
		}
		if _, dup := ids[gmlID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateNode, "GML node id %s appears twice", gmlID)
		}
		ids[gmlID] = n.ID
		if err := addNode(g, n); err != nil {
			return nil, err
		}
	}

	for _, kv := range body {
		if kv.key != "edge" || kv.value.list == nil {
			continue
		}
		e := netgraph.Edge{Color: ro.edgeColor, Attrs: netgraph.Attrs{}}
		var src, dst string
		for _, f := range kv.value.list {
			if f.value.list != nil {
				continue
			}
			switch f.key {
			case "source":
				src = scalarString(f.value.scalar)
			case "target":
				dst = scalarString(f.value.scalar)
			case "label":
				e.Label = scalarString(f.value.scalar)
			case "color":
				if c, err := netgraph.ParseColor(scalarString(f.value.scalar)); err == nil {
					e.Color = c
					continue
				}
				e.Attrs[f.key] = f.value.scalar
			default:
				e.Attrs[f.key] = f.value.scalar
			}
		}
		e.From, e.To = resolve(ids, src), resolve(ids, dst)
		if err := addEdge(g, e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// resolve maps a GML id to its node ID. Unknown ids pass through so the
// graph reports them as invalid references.
func resolve(ids map[string]string, gmlID string) string {
	if id, ok := ids[gmlID]; ok {
		return id
	}
	return gmlID
}

func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return ""
	}
}

// =============================================================================
// Parser
// =============================================================================

type gmlParser struct {
	lex *gmlLexer
}

// parseList reads key/value pairs until "]" (nested) or end of input (top).
func (p *gmlParser) parseList(nested bool) ([]gmlPair, error) {
	var out []gmlPair
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			if nested {
				return nil, fmt.Errorf("line %d: unterminated list", tok.line)
			}
			return out, nil
		case tokClose:
			if !nested {
				return nil, fmt.Errorf("line %d: unexpected ]", tok.line)
			}
			return out, nil
		case tokKey:
		default:
			return nil, fmt.Errorf("line %d: expected key, got %q", tok.line, tok.text)
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", tok.text, err)
		}
		out = append(out, gmlPair{key: tok.text, value: val})
	}
}

func (p *gmlParser) parseValue() (gmlValue, error) {
	tok, err := p.lex.next()
	if err != nil {
		return gmlValue{}, err
	}
	switch tok.kind {
	case tokOpen:
		list, err := p.parseList(true)
		if err != nil {
			return gmlValue{}, err
		}
		if list == nil {
			list = []gmlPair{}
		}
		return gmlValue{list: list}, nil
	case tokString:
		return gmlValue{scalar: tok.text}, nil
	case tokNumber:
		if i, err := strconv.Atoi(tok.text); err == nil {
			return gmlValue{scalar: i}, nil
		}
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return gmlValue{}, fmt.Errorf("line %d: bad number %q", tok.line, tok.text)
		}
		return gmlValue{scalar: f}, nil
	case tokKey:
		// Bare words such as NaN or INF.
		if f, err := strconv.ParseFloat(tok.text, 64); err == nil {
			return gmlValue{scalar: f}, nil
		}
		return gmlValue{}, fmt.Errorf("line %d: unexpected word %q", tok.line, tok.text)
	default:
		return gmlValue{}, fmt.Errorf("line %d: missing value", tok.line)
	}
}

// =============================================================================
// Lexer
// =============================================================================

type tokKind int

const (
	tokEOF tokKind = iota
	tokKey
	tokNumber
	tokString
	tokOpen
	tokClose
)

type token struct {
	kind tokKind
	text string
	line int
}

type gmlLexer struct {
	src  []rune
	pos  int
	line int
}

func newGMLLexer(src string) *gmlLexer {
	return &gmlLexer{src: []rune(src), line: 1}
}

func (l *gmlLexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '[':
		l.pos++
		return token{kind: tokOpen, text: "[", line: l.line}, nil
	case c == ']':
		l.pos++
		return token{kind: tokClose, text: "]", line: l.line}, nil
	case c == '"':
		start, line := l.pos+1, l.line
		end := start
		for end < len(l.src) && l.src[end] != '"' {
			if l.src[end] == '\n' {
				l.line++
			}
			end++
		}
		if end >= len(l.src) {
			return token{}, fmt.Errorf("line %d: unterminated string", line)
		}
		l.pos = end + 1
		return token{kind: tokString, text: html.UnescapeString(string(l.src[start:end])), line: line}, nil
	case c == '-' || c == '+' || c == '.' || unicode.IsDigit(c):
		start := l.pos
		l.pos++
		for l.pos < len(l.src) && (strings.ContainsRune("+-.", l.src[l.pos]) || unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos])) {
			l.pos++
		}
		return token{kind: tokNumber, text: string(l.src[start:l.pos]), line: l.line}, nil
	case unicode.IsLetter(c) || c == '_':
		start := l.pos
		for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
		return token{kind: tokKey, text: string(l.src[start:l.pos]), line: l.line}, nil
	default:
		return token{}, fmt.Errorf("line %d: unexpected character %q", l.line, c)
	}
}

// skipSpace skips whitespace and # comments.
func (l *gmlLexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case unicode.IsSpace(c):
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// =============================================================================
// Writer
// =============================================================================

var gmlEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")

// WriteGML encodes g as GML. Node positions are written as x and y, colors
// as hex strings, and scalar attributes in sorted key order.
func WriteGML(g *netgraph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	directed := 0
	if g.Directed() {
		directed = 1
	}
	fmt.Fprintf(bw, "graph [\n  directed %d\n", directed)

	for i, n := range g.Nodes() {
		fmt.Fprintf(bw, "  node [\n    id %d\n", i)
		if n.ID != strconv.Itoa(i) {
			writeGMLField(bw, "name", n.ID)
		}
		if n.Label != "" {
			writeGMLField(bw, "label", n.Label)
		}
		writeGMLField(bw, "color", n.Color.Hex())
		writeGMLField(bw, AttrX, n.Pos.X)
		writeGMLField(bw, AttrY, n.Pos.Y)
		writeGMLAttrs(bw, n.Attrs, "id", "name", "label", "color", AttrX, AttrY)
		bw.WriteString("  ]\n")
	}
	for _, e := range g.Edges() {
		u, _ := g.Index(e.From)
		v, _ := g.Index(e.To)
		fmt.Fprintf(bw, "  edge [\n    source %d\n    target %d\n", u, v)
		if e.Label != "" {
			writeGMLField(bw, "label", e.Label)
		}
		writeGMLField(bw, "color", e.Color.Hex())
		writeGMLAttrs(bw, e.Attrs, "source", "target", "label", "color")
		bw.WriteString("  ]\n")
	}

	bw.WriteString("]\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write GML: %w", err)
	}
	return nil
}

func writeGMLAttrs(w *bufio.Writer, attrs netgraph.Attrs, reserved ...string) {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if slices.Contains(reserved, k) || !validGMLKey(k) {
			continue
		}
		writeGMLField(w, k, attrs[k])
	}
}

func validGMLKey(k string) bool {
	if k == "" || !unicode.IsLetter(rune(k[0])) {
		return false
	}
	for _, c := range k {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

// writeGMLField writes one scalar line. Non-scalar values are skipped.
func writeGMLField(w *bufio.Writer, key string, v any) {
	switch x := v.(type) {
	case string:
		fmt.Fprintf(w, "    %s \"%s\"\n", key, gmlEscaper.Replace(x))
	case int:
		fmt.Fprintf(w, "    %s %d\n", key, x)
	case int64:
		fmt.Fprintf(w, "    %s %d\n", key, x)
	case bool:
		b := 0
		if x {
			b = 1
		}
		fmt.Fprintf(w, "    %s %d\n", key, b)
	case float64:
		fmt.Fprintf(w, "    %s %s\n", key, gmlFloat(x))
	}
}

// gmlFloat always includes a decimal point or exponent so the value reads
// back as a float.
func gmlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
