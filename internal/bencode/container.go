package bencode

func (d *Decoder) enter(off int) error {
	d.depth++
	if d.depth > d.maxDepth {
		return d.fail(off, "nesting too deep")
	}
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}

// decodeList reads l<values>e. Its consumed length runs from 'l' through the
// terminator actually found.
func (d *Decoder) decodeList() (Bvalue, error) {
	start := d.pos
	if err := d.enter(start); err != nil {
		return nil, err
	}
	defer d.leave()

	d.pos++
	items := make([]Bvalue, 0)

	for {
		if d.pos >= len(d.data) {
			return nil, d.eof("unterminated list")
		}
		if d.data[d.pos] == 'e' {
			break
		}

		item, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	d.pos++
	l := &BList{span: span{off: start, n: d.pos - start}, Items: items}

	d.logger.Debug("decoded list", "offset", start, "items", len(items), "consumed", l.n)
	return l, nil
}

// decodeDict reads d<key><value>...e. Keys must be byte strings and are
// always read as text. A "pieces" key switches the next value to a BBlob.
func (d *Decoder) decodeDict() (Bvalue, error) {
	start := d.pos
	if err := d.enter(start); err != nil {
		return nil, err
	}
	defer d.leave()

	d.pos++
	pairs := make([]Pair, 0)

	for {
		if d.pos >= len(d.data) {
			return nil, d.eof("unterminated dictionary")
		}
		if d.data[d.pos] == 'e' {
			break
		}

		key, err := d.decodeKey()
		if err != nil {
			return nil, err
		}

		if key.String() == PiecesKey {
			d.binaryNext = true
			d.logger.Debug("binary payload mode on", "offset", key.off)
		}

		val, err := d.decodeValue()
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, Pair{Key: key, Value: val})
	}

	d.pos++
	dict := &BDict{span: span{off: start, n: d.pos - start}, Pairs: pairs}

	d.logger.Debug("decoded dictionary", "offset", start, "pairs", len(pairs), "consumed", dict.n)
	return dict, nil
}

func (d *Decoder) decodeKey() (*BString, error) {
	off := d.pos

	switch kind := dispatch(d.data[off]); kind {
	case KindByteString:
	case KindInvalid:
		return nil, d.fail(off, "unrecognized lead byte for dictionary key")
	default:
		return nil, &KeyTypeError{Offset: off, Kind: kind}
	}

	d.binaryNext = false
	v, err := d.decodeString(false)
	if err != nil {
		return nil, err
	}
	return v.(*BString), nil
}
