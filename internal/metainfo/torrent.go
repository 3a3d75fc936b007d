package metainfo

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"time"

	"torrent-bencode/internal/bencode"
)

const HashLen = sha1.Size

type File struct {
	Length int64
	Path   []string
}

type TorrentMeta struct {
	Announce     string
	AnnounceList [][]string
	Comment      string
	CreatedBy    string
	CreationDate time.Time

	Name        string
	PieceLength int64
	Length      int64
	Files       []File
	Private     bool

	Pieces    [][HashLen]byte
	InfoBytes []byte
	InfoHash  [HashLen]byte
}

// ParseTorrent reads a metafile. The info hash is taken over the exact bytes
// of the info dictionary as they appear in data.
func ParseTorrent(data []byte, opts ...bencode.Option) (*TorrentMeta, error) {

	rootVal, _, err := bencode.Decode(data, opts...)
	if err != nil {
		return nil, err
	}

	root, ok := rootVal.(*bencode.BDict)
	if !ok {
		return nil, errors.New("metainfo: torrent file is not a dictionary")
	}

	meta := &TorrentMeta{}

	meta.Announce, err = root.GetText("announce")
	if err != nil && !errors.Is(err, bencode.ErrNotFound) {
		return nil, fmt.Errorf("metainfo: announce: %w", err)
	}
	if err := parseOptional(root, meta); err != nil {
		return nil, err
	}
	if meta.Announce == "" && len(meta.AnnounceList) == 0 {
		return nil, errors.New("metainfo: missing announce")
	}

	info, err := root.GetDict("info")
	if err != nil {
		return nil, fmt.Errorf("metainfo: info: %w", err)
	}
	if err := parseInfo(info, meta); err != nil {
		return nil, err
	}

	meta.InfoBytes = append([]byte(nil), bencode.Span(data, info)...)
	meta.InfoHash = sha1.Sum(meta.InfoBytes)

	return meta, nil
}

func parseOptional(root *bencode.BDict, meta *TorrentMeta) error {
	var err error

	if root.Has("announce-list") {
		meta.AnnounceList, err = parseAnnounceList(root)
		if err != nil {
			return err
		}
	}
	if root.Has("comment") {
		if meta.Comment, err = root.GetText("comment"); err != nil {
			return fmt.Errorf("metainfo: comment: %w", err)
		}
	}
	if root.Has("created by") {
		if meta.CreatedBy, err = root.GetText("created by"); err != nil {
			return fmt.Errorf("metainfo: created by: %w", err)
		}
	}
	if root.Has("creation date") {
		secs, err := root.GetInt("creation date")
		if err != nil {
			return fmt.Errorf("metainfo: creation date: %w", err)
		}
		meta.CreationDate = time.Unix(secs, 0).UTC()
	}
	return nil
}

func parseAnnounceList(root *bencode.BDict) ([][]string, error) {
	tiers, err := root.GetList("announce-list")
	if err != nil {
		return nil, fmt.Errorf("metainfo: announce-list: %w", err)
	}

	var out [][]string
	for i, tierVal := range tiers.Items {
		tier, ok := tierVal.(*bencode.BList)
		if !ok {
			return nil, fmt.Errorf("metainfo: announce-list tier %d is a %s", i, tierVal.Kind())
		}
		urls, err := textList(tier)
		if err != nil {
			return nil, fmt.Errorf("metainfo: announce-list tier %d: %w", i, err)
		}
		out = append(out, urls)
	}
	return out, nil
}

func parseInfo(info *bencode.BDict, meta *TorrentMeta) error {
	var err error

	if meta.Name, err = info.GetText("name"); err != nil {
		return fmt.Errorf("metainfo: name: %w", err)
	}

	if meta.PieceLength, err = info.GetInt("piece length"); err != nil {
		return fmt.Errorf("metainfo: piece length: %w", err)
	}
	if meta.PieceLength <= 0 {
		return fmt.Errorf("metainfo: invalid piece length %d", meta.PieceLength)
	}

	if info.Has("private") {
		p, err := info.GetInt("private")
		if err != nil {
			return fmt.Errorf("metainfo: private: %w", err)
		}
		meta.Private = p == 1
	}

	if err := parseLength(info, meta); err != nil {
		return err
	}

	piecesRaw, err := info.GetBytes("pieces")
	if err != nil {
		return fmt.Errorf("metainfo: pieces: %w", err)
	}
	if len(piecesRaw)%HashLen != 0 {
		return fmt.Errorf("metainfo: invalid pieces length %d", len(piecesRaw))
	}

	meta.Pieces = make([][HashLen]byte, 0, len(piecesRaw)/HashLen)
	for i := 0; i < len(piecesRaw); i += HashLen {
		meta.Pieces = append(meta.Pieces, [HashLen]byte(piecesRaw[i:i+HashLen]))
	}

	if want := meta.expectedPieces(); int64(len(meta.Pieces)) != want {
		return fmt.Errorf("metainfo: %d piece hashes for %d bytes, want %d", len(meta.Pieces), meta.Length, want)
	}

	return nil
}

// parseLength handles both layouts: "length" for a single file, "files" for
// a directory.
func parseLength(info *bencode.BDict, meta *TorrentMeta) error {
	if info.Has("length") {
		l, err := info.GetInt("length")
		if err != nil {
			return fmt.Errorf("metainfo: length: %w", err)
		}
		if l < 0 {
			return fmt.Errorf("metainfo: negative length %d", l)
		}
		meta.Length = l
		return nil
	}

	files, err := info.GetList("files")
	if err != nil {
		return fmt.Errorf("metainfo: no length or files field: %w", err)
	}

	meta.Files = make([]File, 0, files.Len())
	var total int64
	for i, fv := range files.Items {
		fd, ok := fv.(*bencode.BDict)
		if !ok {
			return fmt.Errorf("metainfo: file %d is a %s", i, fv.Kind())
		}

		l, err := fd.GetInt("length")
		if err != nil {
			return fmt.Errorf("metainfo: file %d length: %w", i, err)
		}
		if l < 0 {
			return fmt.Errorf("metainfo: file %d has negative length %d", i, l)
		}

		pl, err := fd.GetList("path")
		if err != nil {
			return fmt.Errorf("metainfo: file %d path: %w", i, err)
		}
		path, err := textList(pl)
		if err != nil {
			return fmt.Errorf("metainfo: file %d path: %w", i, err)
		}
		if len(path) == 0 {
			return fmt.Errorf("metainfo: file %d has an empty path", i)
		}

		meta.Files = append(meta.Files, File{Length: l, Path: path})
		total += l
	}

	meta.Length = total
	return nil
}

func textList(l *bencode.BList) ([]string, error) {
	out := make([]string, 0, l.Len())
	for i, v := range l.Items {
		s, ok := v.(*bencode.BString)
		if !ok {
			return nil, fmt.Errorf("item %d is a %s", i, v.Kind())
		}
		out = append(out, s.String())
	}
	return out, nil
}

func (m *TorrentMeta) expectedPieces() int64 {
	return (m.Length + m.PieceLength - 1) / m.PieceLength
}

// IsMultiFile reports whether the info dictionary used "files", even an
// empty list.
func (m *TorrentMeta) IsMultiFile() bool {
	return m.Files != nil
}

func (m *TorrentMeta) NumPieces() int {
	return len(m.Pieces)
}

// PieceSize is PieceLength for every piece but the last, which holds what is
// left of Length.
func (m *TorrentMeta) PieceSize(index int) (int64, error) {
	if index < 0 || index >= len(m.Pieces) {
		return 0, fmt.Errorf("metainfo: piece %d out of range [0, %d)", index, len(m.Pieces))
	}
	begin := int64(index) * m.PieceLength
	end := begin + m.PieceLength
	if end > m.Length {
		return m.Length - begin, nil
	}
	return m.PieceLength, nil
}
