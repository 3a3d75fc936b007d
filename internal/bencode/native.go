package bencode

import "fmt"

// Native converts v to plain Go values: int64, string, []byte for blobs,
// []any and map[string]any. Later duplicate keys overwrite earlier ones.
func Native(v Bvalue) (any, error) {
	switch v := v.(type) {
	case *BInt:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("bencode: integer %s at offset %d: %w", v.Text, v.off, err)
		}
		return n, nil

	case *BString:
		return v.String(), nil

	case *BBlob:
		return v.Data, nil

	case *BList:
		out := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			n, err := Native(item)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil

	case *BDict:
		out := make(map[string]any, len(v.Pairs))
		for _, p := range v.Pairs {
			n, err := Native(p.Value)
			if err != nil {
				return nil, err
			}
			out[p.Key.String()] = n
		}
		return out, nil
	}
	return nil, ErrInvalidValue
}
