package model

import (
	"sort"
	"strings"

	"github.com/armon/go-radix"
)

// Prefixes maps prefix names to namespace IRIs.
//
// Abbreviation picks the longest registered namespace that is a prefix of the
// IRI, so overlapping namespaces resolve to the most specific name.
type Prefixes struct {
	names      map[string]string
	namespaces *radix.Tree // namespace -> prefix name
}

// NewPrefixes returns an empty prefix table.
func NewPrefixes() *Prefixes {
	return &Prefixes{
		names:      make(map[string]string),
		namespaces: radix.New(),
	}
}

// DefaultPrefixes returns a table with the owl, rdf, rdfs and xsd prefixes.
func DefaultPrefixes() *Prefixes {
	p := NewPrefixes()
	p.Set("owl", OWL)
	p.Set("rdf", RDF)
	p.Set("rdfs", RDFS)
	p.Set("xsd", XSD)
	return p
}

// Set registers a prefix. The empty name is the default prefix (":local").
func (p *Prefixes) Set(name, namespace string) {
	if old, ok := p.names[name]; ok {
		p.namespaces.Delete(old)
	}
	p.names[name] = namespace
	p.namespaces.Insert(namespace, name)
}

// Namespace returns the namespace registered for name.
func (p *Prefixes) Namespace(name string) (string, bool) {
	ns, ok := p.names[name]
	return ns, ok
}

// Expand resolves an abbreviated IRI "prefix:local". It reports false when the
// prefix is unknown or the input contains no colon.
func (p *Prefixes) Expand(abbreviated string) (string, bool) {
	name, local, ok := strings.Cut(abbreviated, ":")
	if !ok {
		return "", false
	}
	ns, ok := p.names[name]
	if !ok {
		return "", false
	}
	return ns + local, true
}

// Abbreviate shortens iri to "prefix:local" using the longest matching
// namespace. It returns "<iri>" when no namespace matches or the local part
// would not survive a round-trip through the parser.
func (p *Prefixes) Abbreviate(iri string) string {
	if p != nil {
		if ns, v, ok := p.namespaces.LongestPrefix(iri); ok {
			local := iri[len(ns):]
			if isLocalName(local) {
				return v.(string) + ":" + local
			}
		}
	}
	return "<" + iri + ">"
}

// Names returns the registered prefix names in sorted order.
func (p *Prefixes) Names() []string {
	names := make([]string, 0, len(p.names))
	for n := range p.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge copies every prefix of other into p, overwriting duplicates.
func (p *Prefixes) Merge(other *Prefixes) {
	if other == nil {
		return
	}
	for name, ns := range other.names {
		p.Set(name, ns)
	}
}

func isLocalName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.':
		case c >= 0x80:
		default:
			return false
		}
	}
	return true
}
