package mdsite

import (
	"fmt"
	"strings"
)

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list. Serialization follows insertion order.
type Attrs []Attr

// Set replaces the value of an existing key in place, or appends a new entry.
func (a Attrs) Set(key, value string) Attrs {
	for i := range a {
		if a[i].Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// String emits each entry as ` key="value"`.
// Keys and values are written as-is: nothing is escaped.
func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, attr := range a {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attr.Value)
		sb.WriteByte('"')
	}
	return sb.String()
}

// Node is an element of the HTML tree produced by conversion.
// The two implementations are *Leaf and *Parent.
type Node interface {
	Render() (string, error)
}

// Compile-time interface implementation checks.
var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Parent)(nil)
)

// Leaf is a node without children holding a direct value.
// A leaf without a tag renders its value verbatim; this is how plain
// inline text passes through.
type Leaf struct {
	tag      string
	value    string
	hasValue bool
	attrs    Attrs
}

// NewLeaf creates a leaf with the given tag and value.
// An empty tag means the leaf renders as raw text.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{tag: tag, value: value, hasValue: true, attrs: attrs}
}

// NewText creates an untagged leaf.
func NewText(value string) *Leaf {
	return NewLeaf("", value)
}

// Tag returns the leaf tag, or "" if absent.
func (l *Leaf) Tag() string { return l.tag }

// Value returns the leaf value and whether one was set.
func (l *Leaf) Value() (string, bool) { return l.value, l.hasValue }

// Attrs returns the leaf attributes.
func (l *Leaf) Attrs() Attrs { return l.attrs }

// Render returns the HTML for the leaf.
func (l *Leaf) Render() (string, error) {
	if !l.hasValue {
		return "", ErrMissingValue
	}
	if l.tag == "" {
		return l.value, nil
	}
	return "<" + l.tag + l.attrs.String() + ">" + l.value + "</" + l.tag + ">", nil
}

// String implements fmt.Stringer for debugging.
func (l *Leaf) String() string {
	return fmt.Sprintf("Leaf(%q, %q, %v)", l.tag, l.value, l.attrs)
}

// Parent is a node whose content is the concatenation of its children.
// Construction never fails: a missing tag or empty children are reported
// at render time.
type Parent struct {
	tag      string
	children []Node
	attrs    Attrs
}

// NewParent creates a parent node.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	return &Parent{tag: tag, children: children, attrs: attrs}
}

// Tag returns the parent tag.
func (p *Parent) Tag() string { return p.tag }

// Children returns the child nodes in order.
func (p *Parent) Children() []Node { return p.children }

// Attrs returns the parent attributes.
func (p *Parent) Attrs() Attrs { return p.attrs }

// Render returns the HTML for the parent and all its descendants.
// The first failing child aborts rendering.
func (p *Parent) Render() (string, error) {
	if p.tag == "" {
		return "", ErrMissingTag
	}
	if len(p.children) == 0 {
		return "", fmt.Errorf("%w: <%s>", ErrEmptyChildren, p.tag)
	}

	var sb strings.Builder
	sb.WriteString("<" + p.tag + p.attrs.String() + ">")
	for _, child := range p.children {
		html, err := child.Render()
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	sb.WriteString("</" + p.tag + ">")
	return sb.String(), nil
}

// String implements fmt.Stringer for debugging.
func (p *Parent) String() string {
	return fmt.Sprintf("Parent(%q, %d children, %v)", p.tag, len(p.children), p.attrs)
}
