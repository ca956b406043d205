package shallow

// Contains reports whether k is one of keys. Comparison is exact and
// case-sensitive.
func Contains(keys []string, k string) bool {
	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] == k {
			return true
		}
	}
	return false
}

// SelectKeys returns a new Document holding the entries of obj whose key is in
// keys, in obj's enumeration order. Keys absent from obj are ignored. Values
// are copied by assignment; nested structures are shared with obj.
//
// obj must be a record (see SimpleKeys), otherwise ErrTypeMismatch is
// returned.
func SelectKeys(keys []string, obj any) (Document, error) {
	d, err := asDocument(obj)
	if err != nil {
		return nil, err
	}
	return project(d, func(e Entry) bool { return Contains(keys, e.Key) }), nil
}

// project returns the entries of d accepted by keep, in order.
func project(d Document, keep func(Entry) bool) Document {
	out := make(Document, 0, len(d))
	for _, e := range d {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// SimpleKeys returns a copy of obj without its callable and composite fields.
//
// obj may be a Document, a map with string keys, or a struct (or a pointer to
// either). Map keys are enumerated in sorted order and struct fields in
// declaration order, using json tag names where set. Only exported struct
// fields are considered. When a Document repeats a key, each entry is
// filtered on its own value.
func SimpleKeys(obj any) (Document, error) {
	d, err := asDocument(obj)
	if err != nil {
		return nil, err
	}
	return project(d, func(e Entry) bool {
		return !IsFn(e.Value) && !IsObj(e.Value)
	}), nil
}
