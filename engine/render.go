package engine

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// Execute renders t through itf and writes the output to w. Nothing is
// written unless the whole render succeeds.
//
// Options override the template's flags and supply the partial resolver for
// this render only.
func (t *Template) Execute(w io.Writer, itf Itf, opts ...Option) error {
	if itf == nil {
		return newError(StatusInvalidItf, "", -1)
	}

	var buf bytes.Buffer

	if err := t.execute(&buf, itf, opts...); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)

	return err
}

// Render parses text and renders it through itf.
func Render(text string, itf Itf, opts ...Option) (string, error) {
	t, err := Parse(text, opts...)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	if err := t.Execute(&b, itf, opts...); err != nil {
		return "", err
	}

	return b.String(), nil
}

func (t *Template) execute(buf *bytes.Buffer, itf Itf, opts ...Option) (err error) {
	if err = itf.Start(); err != nil {
		itf.Stop(err)

		return err
	}

	defer func() { itf.Stop(err) }()

	r := &renderer{
		itf: itf,
		cfg: apply(config{flags: t.flags}, opts...),
		out: buf,
	}

	return r.walk(t.nodes)
}

type partialKey struct{ name, indent string }

// renderer holds the state of one render.
type renderer struct {
	itf   Itf
	cfg   config
	out   *bytes.Buffer
	depth int

	// partials caches parsed partials for the duration of the render.
	partials map[partialKey][]node
}

func (r *renderer) walk(nodes []node) error {
	for _, n := range nodes {
		var err error

		switch n := n.(type) {
		case *textNode:
			r.out.WriteString(n.text)
		case *varNode:
			err = r.variable(n)
		case *sectionNode:
			err = r.section(n)
		case *partialNode:
			err = r.partial(n)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// nest renders nodes one level deeper.
func (r *renderer) nest(nodes []node, tag string, offset int) error {
	if r.depth >= MaxDepth {
		return newError(StatusTooDeep, tag, offset)
	}

	r.depth++
	defer func() { r.depth-- }()

	return r.walk(nodes)
}

// resolve selects a dotted name: the first component searches every scope,
// the rest only the previous component's value.
func (r *renderer) resolve(name string) Lookup {
	if name == "." {
		r.itf.SelCurrent()

		return Found
	}

	head, rest, dotted := strings.Cut(name, ".")
	res := r.itf.Sel(head)

	for dotted && res != NotFound {
		head, rest, dotted = strings.Cut(rest, ".")
		res = r.itf.Subsel(head)
	}

	return res
}

func (r *renderer) variable(n *varNode) error {
	var text string

	switch {
	case n.name == "*" && r.cfg.flags.Has(ObjectIter):
		text = r.itf.Get(true)

	default:
		if r.resolve(n.name) == NotFound {
			if r.cfg.flags.Has(ErrorUndefined) {
				return newError(StatusUndefinedTag, n.name, n.offset)
			}

			return nil
		}

		text = r.itf.Get(false)
	}

	if n.escape {
		writeEscaped(r.out, text)
	} else {
		r.out.WriteString(text)
	}

	return nil
}

func (r *renderer) section(n *sectionNode) error {
	if n.cmp != nil {
		holds := r.resolve(n.name) != NotFound &&
			n.cmp.op.holds(r.itf.Compare(n.cmp.literal))

		if holds != n.inverted {
			return r.nest(n.nodes, n.tag, n.offset)
		}

		return nil
	}

	entered := false

	if r.resolve(n.name) != NotFound {
		var err error

		if entered, err = r.itf.Enter(n.keyValue); err != nil {
			return err
		}
	}

	if n.inverted {
		if entered {
			return r.itf.Leave()
		}

		return r.nest(n.nodes, n.tag, n.offset)
	}

	if !entered {
		return nil
	}

	for {
		if err := r.nest(n.nodes, n.tag, n.offset); err != nil {
			return err
		}

		more, err := r.itf.Next()
		if err != nil {
			return err
		}

		if !more {
			break
		}
	}

	return r.itf.Leave()
}

func (r *renderer) partial(n *partialNode) error {
	key := partialKey{name: n.name, indent: n.indent}

	nodes, ok := r.partials[key]
	if !ok {
		if r.cfg.partials == nil {
			return newError(StatusPartialNotFound, n.name, n.offset)
		}

		text, found := r.cfg.partials(n.name)
		if !found {
			return newError(StatusPartialNotFound, n.name, n.offset)
		}

		var err error

		nodes, err = parse(indentLines(text, n.indent), r.cfg.flags)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Tag = n.name + ": " + e.Tag
			}

			return err
		}

		if r.partials == nil {
			r.partials = make(map[partialKey][]node)
		}

		r.partials[key] = nodes
	}

	return r.nest(nodes, n.name, n.offset)
}

// writeEscaped writes s with & < > and " replaced by HTML entities.
func writeEscaped(buf *bytes.Buffer, s string) {
	last := 0

	for i := 0; i < len(s); i++ {
		var esc string

		switch s[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}

		buf.WriteString(s[last:i])
		buf.WriteString(esc)
		last = i + 1
	}

	buf.WriteString(s[last:])
}
