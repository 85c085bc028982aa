package host

// StyleDeclaration and TokenList are the marker interfaces the evaluator's
// member-read path checks against to decide whether a freshly read value
// should have its owning element attached as `parent`. A real
// host embedding normally backs `element.style` and `element.classList`
// with types implementing these — see CSSStyleDeclaration and DOMTokenList
// below for a usable reference implementation.
type StyleDeclaration interface {
	IsCSSStyleDeclaration()
	HasParent() bool
	SetParent(parent interface{})
	GetParent() interface{}
}

type TokenList interface {
	IsDOMTokenList()
	HasParent() bool
	SetParent(parent interface{})
	GetParent() interface{}
}

// AttrNode is the marker interface for host Attr nodes; the checker hook
// reads OwnerElement() to attribute an attribute mutation back to the
// element that owns it.
type AttrNode interface {
	IsAttr()
	OwnerElement() interface{}
}

// Collection is the marker interface for a jQuery-like wrapped element set;
// the checker hook calls Get() to expand it to its constituent elements.
type Collection interface {
	IsJQueryCollection()
	Get() []interface{}
}

// CSSStyleDeclaration is a reference host implementation of an element's
// inline style object: an object whose properties can be read/written by
// name and which remembers the element it was read off of.
type CSSStyleDeclaration struct {
	Properties map[string]string
	Parent     interface{}
}

func NewCSSStyleDeclaration() *CSSStyleDeclaration {
	return &CSSStyleDeclaration{Properties: make(map[string]string)}
}

func (s *CSSStyleDeclaration) IsCSSStyleDeclaration()  {}
func (s *CSSStyleDeclaration) HasParent() bool         { return s.Parent != nil }
func (s *CSSStyleDeclaration) GetParent() interface{}  { return s.Parent }
func (s *CSSStyleDeclaration) SetParent(p interface{}) {
	if s.Parent == nil {
		s.Parent = p
	}
}

// GetPropertyValue and SetProperty give user scripts the usual CSSOM
// surface and are the only way to reach individual entries of Properties:
// host.Access/host.Set see only exported struct fields and methods, so a
// plain property access by CSS name (`style.color = 'red'`) does not read
// or write Properties.
func (s *CSSStyleDeclaration) GetPropertyValue(name string) string { return s.Properties[name] }
func (s *CSSStyleDeclaration) SetProperty(name, value string)      { s.Properties[name] = value }

// DOMTokenList is a reference host implementation of `element.classList`.
type DOMTokenList struct {
	Tokens []string
	Parent interface{}
}

func NewDOMTokenList() *DOMTokenList { return &DOMTokenList{} }

func (t *DOMTokenList) IsDOMTokenList()       {}
func (t *DOMTokenList) HasParent() bool       { return t.Parent != nil }
func (t *DOMTokenList) GetParent() interface{} { return t.Parent }
func (t *DOMTokenList) SetParent(p interface{}) {
	if t.Parent == nil {
		t.Parent = p
	}
}

func (t *DOMTokenList) Contains(token string) bool {
	for _, tok := range t.Tokens {
		if tok == token {
			return true
		}
	}
	return false
}

func (t *DOMTokenList) Add(tokens ...string) {
	for _, tok := range tokens {
		if !t.Contains(tok) {
			t.Tokens = append(t.Tokens, tok)
		}
	}
}

func (t *DOMTokenList) Remove(tokens ...string) {
	for _, tok := range tokens {
		for i, have := range t.Tokens {
			if have == tok {
				t.Tokens = append(t.Tokens[:i], t.Tokens[i+1:]...)
				break
			}
		}
	}
}

// Attr is a reference host implementation of a DOM attribute node.
type Attr struct {
	Name  string
	Value string
	Owner interface{}
}

func (a *Attr) IsAttr()                  {}
func (a *Attr) OwnerElement() interface{} { return a.Owner }

// Element is a minimal reference host element: enough surface for
// CSSStyleDeclaration/DOMTokenList/Attr attribution to have something to
// point at in tests and in the cmd/jstrack demo harness.
type Element struct {
	TagName    string
	Style      *CSSStyleDeclaration
	ClassList  *DOMTokenList
	Attributes map[string]*Attr
}

func NewElement(tagName string) *Element {
	e := &Element{
		TagName:    tagName,
		Style:      NewCSSStyleDeclaration(),
		ClassList:  NewDOMTokenList(),
		Attributes: make(map[string]*Attr),
	}
	e.Style.Parent = e
	e.ClassList.Parent = e
	return e
}

func (e *Element) SetAttribute(name, value string) {
	if a, ok := e.Attributes[name]; ok {
		a.Value = value
		return
	}
	e.Attributes[name] = &Attr{Name: name, Value: value, Owner: e}
}

func (e *Element) GetAttribute(name string) string {
	if a, ok := e.Attributes[name]; ok {
		return a.Value
	}
	return ""
}

// JQuery is a minimal reference host implementation of a jQuery-wrapped
// element set, for exercising the checker hook's collection-expansion
// path.
type JQuery struct {
	Elements []interface{}
}

func (j *JQuery) IsJQueryCollection() {}
func (j *JQuery) Get() []interface{}  { return j.Elements }
