package bencode

import "fmt"

// Get returns the value stored under the first key equal to key. A missing
// key is reported through ok, it is not an error.
func (d *BDict) Get(key string) (Bvalue, bool) {
	if d == nil {
		return nil, false
	}
	for _, p := range d.Pairs {
		if string(p.Key.Data) == key {
			return p.Value, true
		}
	}
	return nil, false
}

func (d *BDict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys lists the keys in stored order.
func (d *BDict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.Pairs))
	for _, p := range d.Pairs {
		keys = append(keys, string(p.Key.Data))
	}
	return keys
}

func (d *BDict) lookup(key string, want Kind) (Bvalue, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if v.Kind() != want {
		return nil, &TypeError{Key: key, Want: want, Got: v.Kind()}
	}
	return v, nil
}

func (d *BDict) GetDict(key string) (*BDict, error) {
	v, err := d.lookup(key, KindDictionary)
	if err != nil {
		return nil, err
	}
	return v.(*BDict), nil
}

func (d *BDict) GetList(key string) (*BList, error) {
	v, err := d.lookup(key, KindList)
	if err != nil {
		return nil, err
	}
	return v.(*BList), nil
}

func (d *BDict) GetInt(key string) (int64, error) {
	v, err := d.lookup(key, KindInteger)
	if err != nil {
		return 0, err
	}
	n, err := v.(*BInt).Int64()
	if err != nil {
		return 0, fmt.Errorf("bencode: value of %q: %w", key, err)
	}
	return n, nil
}

func (d *BDict) GetText(key string) (string, error) {
	v, err := d.lookup(key, KindByteString)
	if err != nil {
		return "", err
	}
	return v.(*BString).String(), nil
}

// GetBytes returns the payload of a byte string or binary blob.
func (d *BDict) GetBytes(key string) ([]byte, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	switch v := v.(type) {
	case *BString:
		return v.Data, nil
	case *BBlob:
		return v.Data, nil
	}
	return nil, &TypeError{Key: key, Want: KindBinaryBlob, Got: v.Kind()}
}

// Path follows keys through nested dictionaries starting at v.
func Path(v Bvalue, keys ...string) (Bvalue, error) {
	cur := v
	for i, key := range keys {
		dict, ok := cur.(*BDict)
		if !ok || dict == nil {
			got := KindInvalid
			if cur != nil {
				got = cur.Kind()
			}
			parent := "root"
			if i > 0 {
				parent = keys[i-1]
			}
			return nil, &TypeError{Key: parent, Want: KindDictionary, Got: got}
		}
		next, ok := dict.Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		cur = next
	}
	return cur, nil
}
