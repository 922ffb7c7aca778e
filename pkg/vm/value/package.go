package value

// Package is a single entry in the package arena: an ordered list of
// members (exported values plus the compiler's own bookkeeping) and a
// lookup from entity to member index. Member 0 is always the package's
// auto-generated constructor function -- see NewPackage. There is no
// name-keyed export table: qualified cross-package selector access would
// need multi-file package resolution, which this generator does not
// support, so a member is only ever addressed by entity within the same
// file's compile.
type Package struct {
	Name string

	Members []Value
	index   map[EntityKey]int

	HasMainFunc bool
	MainFunc    int
}

// NewPackage returns a Package with its constructor slot (member 0)
// reserved. ctor should be the KindFunction Value of the freshly allocated
// constructor; callers insert it immediately so invariant 4 (member 0 is
// always the constructor) never has a window where it doesn't hold.
func NewPackage(name string, ctor Value) *Package {
	return &Package{
		Name:    name,
		Members: []Value{ctor},
		index:   map[EntityKey]int{},
	}
}

// AddMember appends val as a new member bound to entity (if hasEntity),
// and returns its index. Used for package-scope FuncDecls and consts,
// whose value is known in full at generation time.
func (p *Package) AddMember(entity EntityKey, hasEntity bool, val Value) int {
	i := len(p.Members)
	p.Members = append(p.Members, val)
	if hasEntity {
		p.index[entity] = i
	}
	return i
}

// AddVar reserves a new member slot for a package-scope var declared
// inside the constructor, bound to entity. The slot starts out Nil; the
// constructor's own bytecode fills it in at runtime when it runs (see
// gen's handling of IsCtor locals in 4.6 of the design). A fresh slot is
// always allocated here -- one per declaration, regardless of how the
// constructor's own local numbering interleaves with other package
// members -- rather than reusing the constructor's local index as the
// member index directly, so that invariant 4 (member 0 is always the
// constructor) can never be violated by a var declared first in program
// order.
func (p *Package) AddVar(entity EntityKey) int {
	return p.AddMember(entity, entity != nil, Nil)
}

// MemberIndex looks up entity among this package's members.
func (p *Package) MemberIndex(entity EntityKey) (int, bool) {
	i, ok := p.index[entity]
	return i, ok
}

// Member returns the value at member index i.
func (p *Package) Member(i int) Value { return p.Members[i] }

// SetMainFunc records that member index i is the package's exported main.
func (p *Package) SetMainFunc(i int) {
	p.HasMainFunc = true
	p.MainFunc = i
}
