package engine

import (
	"strings"
)

const (
	// MaxDepth bounds the nesting of sections and partials.
	MaxDepth = 256
	// MaxTagLength bounds the length of a tag's content.
	MaxTagLength = 4096

	defaultOpen  = "{{"
	defaultClose = "}}"
)

type node interface{ isNode() }

type textNode struct{ text string }

type varNode struct {
	name   string
	escape bool
	offset int
}

type cmpOp int

const (
	opEQ cmpOp = iota
	opNE
	opGT
	opGE
	opLT
	opLE
)

func (op cmpOp) holds(c int) bool {
	switch op {
	case opEQ:
		return c == 0
	case opNE:
		return c != 0
	case opGT:
		return c > 0
	case opGE:
		return c >= 0
	case opLT:
		return c < 0
	case opLE:
		return c <= 0
	default:
		return false
	}
}

type comparison struct {
	op      cmpOp
	literal string
}

type sectionNode struct {
	name     string
	inverted bool
	keyValue bool
	cmp      *comparison
	nodes    []node
	offset   int

	// tag is the name as written, matched by the closing tag.
	tag string
}

type partialNode struct {
	name   string
	indent string
	offset int
}

func (*textNode) isNode()    {}
func (*varNode) isNode()     {}
func (*sectionNode) isNode() {}
func (*partialNode) isNode() {}

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	source string
	flags  Flags
	nodes  []node
}

// Parse parses text. Only [WithFlags] affects parsing.
func Parse(text string, opts ...Option) (*Template, error) {
	cfg := apply(config{flags: AllExtensions}, opts...)

	nodes, err := parse(text, cfg.flags)
	if err != nil {
		return nil, err
	}

	return &Template{source: text, flags: cfg.flags, nodes: nodes}, nil
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string { return t.source }

// Flags returns the extensions the template was parsed with.
func (t *Template) Flags() Flags { return t.flags }

type parser struct {
	src   string
	flags Flags
	open  string
	close string

	// text is the start of pending literal text.
	text  int
	stack []*sectionNode
}

func parse(src string, flags Flags) ([]node, error) {
	p := &parser{
		src:   src,
		flags: flags,
		open:  defaultOpen,
		close: defaultClose,
		stack: []*sectionNode{{}},
	}

	pos := 0

	for {
		i := strings.Index(src[pos:], p.open)
		if i < 0 {
			break
		}

		start := pos + i
		inner := start + len(p.open)

		j := strings.Index(src[inner:], p.close)
		if j < 0 {
			return nil, newError(StatusUnexpectedEnd, "", start)
		}

		content := src[inner : inner+j]
		end := inner + j + len(p.close)

		if len(content) > MaxTagLength {
			return nil, newError(StatusTagTooLong, content[:32]+"…", start)
		}

		next, err := p.tag(content, start, end)
		if err != nil {
			return nil, err
		}

		pos = next
	}

	p.flush(len(src))

	if len(p.stack) > 1 {
		top := p.top()

		return nil, newError(StatusUnexpectedEnd, top.tag, top.offset)
	}

	return p.stack[0].nodes, nil
}

func (p *parser) top() *sectionNode { return p.stack[len(p.stack)-1] }

func (p *parser) emit(n node) { p.top().nodes = append(p.top().nodes, n) }

// flush emits the literal text pending before end.
func (p *parser) flush(end int) {
	if end > p.text {
		p.emit(&textNode{text: p.src[p.text:end]})
	}
}

// tag handles one tag spanning src[start:end] and returns the position where
// scanning resumes.
func (p *parser) tag(content string, start, end int) (int, error) {
	content = strings.TrimLeft(content, " \t")

	if content == "" {
		return p.variable(content, true, start, end)
	}

	sigil, rest := content[0], content[1:]

	switch sigil {
	case '!':
		return p.standalone(start, end, nil), nil

	case '=':
		return p.delimiters(rest, start, end)

	case '{':
		name := strings.TrimSpace(rest)

		switch {
		case strings.HasSuffix(name, "}"):
			name = strings.TrimSpace(name[:len(name)-1])
		case end < len(p.src) && p.src[end] == '}':
			end++
		default:
			return 0, newError(StatusBadUnescapeTag, content, start)
		}

		return p.variable(name, false, start, end)

	case '&':
		return p.variable(strings.TrimSpace(rest), false, start, end)

	case ':':
		if p.flags.Has(Colon) {
			return p.variable(strings.TrimSpace(rest), true, start, end)
		}

	case '#', '^':
		name := strings.TrimSpace(rest)
		if name == "" {
			return 0, newError(StatusEmptyTag, content, start)
		}

		if len(p.stack) > MaxDepth {
			return 0, newError(StatusTooDeep, name, start)
		}

		sec := p.section(name, sigil == '^', start)
		next := p.standalone(start, end, sec)
		p.stack = append(p.stack, sec)

		return next, nil

	case '/':
		name := strings.TrimSpace(rest)

		if len(p.stack) == 1 || p.top().tag != name {
			return 0, newError(StatusClosing, name, start)
		}

		next := p.standalone(start, end, nil)
		p.stack = p.stack[:len(p.stack)-1]

		return next, nil

	case '>':
		name := strings.TrimSpace(rest)
		if name == "" {
			return 0, newError(StatusEmptyTag, content, start)
		}

		part := &partialNode{name: name, offset: start}

		return p.standalone(start, end, part), nil
	}

	return p.variable(strings.TrimSpace(content), true, start, end)
}

func (p *parser) variable(name string, escape bool, start, end int) (int, error) {
	p.flush(start)
	p.text = end

	if name == "" {
		if p.flags.Has(EmptyTag) {
			return end, nil
		}

		return 0, newError(StatusEmptyTag, "", start)
	}

	p.emit(&varNode{name: name, escape: escape, offset: start})

	return end, nil
}

func (p *parser) delimiters(spec string, start, end int) (int, error) {
	spec, ok := strings.CutSuffix(strings.TrimSpace(spec), "=")
	if !ok {
		return 0, newError(StatusBadSeparators, spec, start)
	}

	fields := strings.Fields(spec)
	if len(fields) != 2 ||
		strings.Contains(fields[0], "=") || strings.Contains(fields[1], "=") {
		return 0, newError(StatusBadSeparators, spec, start)
	}

	next := p.standalone(start, end, nil)
	p.open, p.close = fields[0], fields[1]

	return next, nil
}

// section builds a section node, recognizing the comparison and key-value
// iteration extensions enabled by the parser's flags.
func (p *parser) section(name string, inverted bool, offset int) *sectionNode {
	sec := &sectionNode{
		name:     name,
		tag:      name,
		inverted: inverted,
		offset:   offset,
	}

	if i := strings.IndexAny(name, "=<>"); i > 0 {
		var (
			op  cmpOp
			lit = name[i+1:]
			ok  bool
		)

		switch name[i] {
		case '=':
			op, ok = opEQ, p.flags.Has(Equal)
			if rest, neg := strings.CutPrefix(lit, "!"); neg {
				op, lit = opNE, rest
			}

		case '>':
			op, ok = opGT, p.flags.Has(Compare)
			if rest, eq := strings.CutPrefix(lit, "="); eq {
				op, lit = opGE, rest
			}

		case '<':
			op, ok = opLT, p.flags.Has(Compare)
			if rest, eq := strings.CutPrefix(lit, "="); eq {
				op, lit = opLE, rest
			}
		}

		if ok {
			sec.name = strings.TrimSpace(name[:i])
			sec.cmp = &comparison{op: op, literal: strings.TrimSpace(lit)}

			return sec
		}
	}

	if p.flags.Has(ObjectIter) {
		if base, ok := strings.CutSuffix(name, ".*"); ok && base != "" {
			sec.name = base
			sec.keyValue = true
		}
	}

	return sec
}

// standalone emits n and decides how much of the surrounding line the tag at
// src[start:end] consumes. A tag alone on its line, apart from spaces and
// tabs, removes the whole line including its newline. A standalone partial
// records the line's indentation.
func (p *parser) standalone(start, end int, n node) int {
	lineStart := start
	for lineStart > p.text && isBlank(p.src[lineStart-1]) {
		lineStart--
	}

	// Scanning stops at pending text, so a preceding tag on the same line
	// leaves a delimiter character before lineStart.
	alone := lineStart == 0 || p.src[lineStart-1] == '\n'

	lineEnd := end
	for lineEnd < len(p.src) && isBlank(p.src[lineEnd]) {
		lineEnd++
	}

	switch {
	case !alone:
	case lineEnd == len(p.src):
	case p.src[lineEnd] == '\n':
		lineEnd++
	case p.src[lineEnd] == '\r' && lineEnd+1 < len(p.src) && p.src[lineEnd+1] == '\n':
		lineEnd += 2
	default:
		alone = false
	}

	if !alone {
		p.flush(start)
		p.text = end
		p.emitTag(n)

		return end
	}

	p.flush(lineStart)

	if part, ok := n.(*partialNode); ok {
		part.indent = p.src[lineStart:start]
	}

	p.text = lineEnd
	p.emitTag(n)

	return lineEnd
}

func (p *parser) emitTag(n node) {
	if n != nil {
		p.emit(n)
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// indentLines prefixes every line of text with indent. A trailing newline
// does not start a new line.
func indentLines(text, indent string) string {
	if indent == "" || text == "" {
		return text
	}

	var b strings.Builder

	b.Grow(len(text) + len(indent)*(strings.Count(text, "\n")+1))

	for line := range strings.SplitAfterSeq(text, "\n") {
		if line == "" {
			continue
		}

		b.WriteString(indent)
		b.WriteString(line)
	}

	return b.String()
}
