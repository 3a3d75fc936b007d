package bencode

// Release tears a tree down, children before their parent, leaving every
// payload and container empty. A nil or unknown value anywhere in the tree
// yields ErrInvalidValue, but the rest of the tree is still released and the
// first error is returned once teardown is complete.
func Release(v Bvalue) error {
	switch v := v.(type) {
	case *BInt:
		if v == nil {
			return ErrInvalidValue
		}
		v.Text = ""

	case *BString:
		if v == nil {
			return ErrInvalidValue
		}
		v.Data, v.Raw = nil, nil

	case *BBlob:
		if v == nil {
			return ErrInvalidValue
		}
		v.Data = nil

	case *BList:
		if v == nil {
			return ErrInvalidValue
		}
		var first error
		for _, item := range v.Items {
			if err := Release(item); err != nil && first == nil {
				first = err
			}
		}
		v.Items = nil
		return first

	case *BDict:
		if v == nil {
			return ErrInvalidValue
		}
		var first error
		for _, p := range v.Pairs {
			if err := Release(p.Key); err != nil && first == nil {
				first = err
			}
			if err := Release(p.Value); err != nil && first == nil {
				first = err
			}
		}
		v.Pairs = nil
		return first

	default:
		return ErrInvalidValue
	}
	return nil
}
