package value

// Visibility mirrors the three field markers `:`, `::` and `:::` from the
// source grammar: Hidden fields are skipped by std.objectFields and JSON
// manifestation but remain reachable by direct index or inheritance.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
	ForceVisible
)

// FieldEval produces a field's value thunk given the self and super objects
// it should be evaluated against. self is always the outermost object the
// lookup started from (so `self` inside a field sees the fully composed
// object, even through `+`); super is fixed at the point this field's
// literal sits in its `+` chain, baked in when the Field was created.
type FieldEval func(self Value, super *Object) (*Thunk, error)

// Field is one member of an Object's field table.
type Field struct {
	Visibility Visibility
	Super      *Object
	Eval       FieldEval
}

// AssertEval runs an object-level `assert` against a bound self/super pair.
type AssertEval func(self Value, super *Object) error

// Object is a Jsonnet object value: an ordered map of fields plus any
// assertions that must hold whenever the object is forced.
type Object struct {
	Fields  map[string]*Field
	Order   []string // field insertion order, authoritative for iteration
	Asserts []AssertEval

	assertsChecked bool
}

// RunAsserts evaluates every object-level assert exactly once per object,
// against the given self. Jsonnet runs these the first time any field on
// the object is touched, not at construction.
func (o *Object) RunAsserts(self Value) error {
	if o.assertsChecked {
		return nil
	}
	o.assertsChecked = true
	for _, a := range o.Asserts {
		if err := a(self, nil); err != nil {
			return err
		}
	}
	return nil
}

func (*Object) Kind() Kind { return KindObject }

// NewObject builds an empty Object ready to have fields assigned into it.
// Callers typically create the Object first, then populate Fields with
// closures that capture the pointer as self, so fields can reference
// sibling fields and the object itself before construction finishes.
func NewObject() *Object {
	return &Object{Fields: make(map[string]*Field)}
}

// Set inserts or overwrites a field, tracking first-insertion order.
func (o *Object) Set(key string, f *Field) {
	if _, exists := o.Fields[key]; !exists {
		o.Order = append(o.Order, key)
	}
	o.Fields[key] = f
}

// Has reports whether key is present regardless of visibility.
func (o *Object) Has(key string) bool {
	_, ok := o.Fields[key]
	return ok
}

// Get forces the named field's value, evaluated with self bound to the
// given value (normally the outermost Object wrapping this field table).
func (o *Object) Get(key string, self Value) (Value, error) {
	if err := o.RunAsserts(self); err != nil {
		return nil, err
	}
	f, ok := o.Fields[key]
	if !ok {
		return nil, &FieldNotFoundError{Key: key}
	}
	th, err := f.Eval(self, f.Super)
	if err != nil {
		return nil, err
	}
	return th.Force()
}

// VisibleKeys returns field names in insertion order, skipping Hidden ones.
func (o *Object) VisibleKeys() []string {
	keys := make([]string, 0, len(o.Order))
	for _, k := range o.Order {
		if o.Fields[k].Visibility != Hidden {
			keys = append(keys, k)
		}
	}
	return keys
}

// AllKeys returns every field name, including hidden ones, in insertion
// order.
func (o *Object) AllKeys() []string {
	keys := make([]string, len(o.Order))
	copy(keys, o.Order)
	return keys
}

// FieldNotFoundError reports a missing-key lookup on an Object.
type FieldNotFoundError struct {
	Key string
}

func (e *FieldNotFoundError) Error() string {
	return "field does not exist: " + e.Key
}

// Compose implements `left + right` for two objects: fields unique to left
// keep their original Eval/Super unchanged. Every field in right overrides
// the same key in left, rebound so its super is left; its visibility is
// right's, except a Hidden field on left stays Hidden through a right field
// that isn't ForceVisible (`{a:: 1} + {a: 2}` is still hidden).
func Compose(left, right *Object) *Object {
	result := NewObject()
	for _, k := range left.Order {
		if !right.Has(k) {
			result.Set(k, left.Fields[k])
		}
	}
	for _, k := range right.Order {
		rf := right.Fields[k]
		vis := rf.Visibility
		if lf, ok := left.Fields[k]; ok && lf.Visibility == Hidden && rf.Visibility != ForceVisible {
			vis = Hidden
		}
		result.Set(k, &Field{
			Visibility: vis,
			Super:      left,
			Eval:       rf.Eval,
		})
	}
	result.Asserts = append(append([]AssertEval{}, left.Asserts...), right.Asserts...)
	return result
}
