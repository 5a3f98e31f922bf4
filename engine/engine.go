package engine

// Lookup is the result of resolving a name.
type Lookup int

const (
	// NotFound means no scope contains the name.
	NotFound Lookup = iota
	// Found means the name resolved to a non-null value.
	Found
	// FoundNull means a scope contains the name but it holds null.
	FoundNull
)

// OK reports whether the lookup found the name, null or not.
func (l Lookup) OK() bool { return l != NotFound }

// String returns the name of the lookup result.
func (l Lookup) String() string {
	switch l {
	case NotFound:
		return "not-found"
	case Found:
		return "found"
	case FoundNull:
		return "found-null"
	default:
		return "lookup(?)"
	}
}

// Itf is the capability set a renderer drives. Implementations own the data,
// the scope stack and the current selection.
type Itf interface {
	// Start resets the implementation before a render.
	Start() error
	// Compare orders the selection against the literal of a comparison tag.
	Compare(literal string) int
	// Sel selects name, searching scopes from innermost to outermost.
	Sel(name string) Lookup
	// SelCurrent selects the innermost scope's value.
	SelCurrent()
	// Subsel selects name within the current selection only. On NotFound
	// the selection is unchanged.
	Subsel(name string) Lookup
	// Enter opens a section on the selection. It reports false when the
	// section body must not render.
	Enter(keyValue bool) (bool, error)
	// Next advances the innermost section. It reports false when exhausted.
	Next() (bool, error)
	// Leave closes the innermost section.
	Leave() error
	// Get formats the selection, or the current iteration key when key is
	// true.
	Get(key bool) string
	// Stop is called once after every render with its outcome.
	Stop(err error)
}

// PartialFunc returns the source text of the named partial.
type PartialFunc func(name string) (string, bool)

// Flags select grammar extensions.
type Flags uint

const (
	// Colon allows {{:name}} to name variables starting with a sigil.
	Colon Flags = 1 << iota
	// EmptyTag makes {{}} render nothing instead of failing.
	EmptyTag
	// Equal enables {{#k=v}} and {{#k=!v}} sections.
	Equal
	// Compare enables {{#k>v}}, {{#k>=v}}, {{#k<v}} and {{#k<=v}} sections.
	Compare
	// ObjectIter enables {{#k.*}} key-value iteration and {{*}} keys.
	ObjectIter
	// ErrorUndefined fails the render when a variable tag is not found.
	ErrorUndefined
)

// AllExtensions enables every extension except ErrorUndefined.
const AllExtensions = Colon | EmptyTag | Equal | Compare | ObjectIter

// Has reports whether all of o are set in f.
func (f Flags) Has(o Flags) bool { return f&o == o }

type config struct {
	flags    Flags
	partials PartialFunc
}

// Option configures parsing and rendering.
type Option func(config) config

// WithFlags returns an option that selects grammar extensions.
func WithFlags(flags Flags) Option {
	return func(c config) config {
		c.flags = flags

		return c
	}
}

// WithPartials returns an option that sets the partial resolver for a render.
func WithPartials(fn PartialFunc) Option {
	return func(c config) config {
		c.partials = fn

		return c
	}
}

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}
