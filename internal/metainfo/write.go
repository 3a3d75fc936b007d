package metainfo

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jackpal/bencode-go"
)

type bencodeFile struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

type bencodeInfo struct {
	Length      int64  `bencode:"length"`
	Name        string `bencode:"name"`
	PieceLength int64  `bencode:"piece length"`
	Pieces      string `bencode:"pieces"`
	Private     int64  `bencode:"private,omitempty"`
}

// bencodeMultiInfo always writes "files", so an empty file list survives.
type bencodeMultiInfo struct {
	Files       []bencodeFile `bencode:"files"`
	Name        string        `bencode:"name"`
	PieceLength int64         `bencode:"piece length"`
	Pieces      string        `bencode:"pieces"`
	Private     int64         `bencode:"private,omitempty"`
}

type bencodeTorrent[I bencodeInfo | bencodeMultiInfo] struct {
	Announce     string     `bencode:"announce,omitempty"`
	AnnounceList [][]string `bencode:"announce-list,omitempty"`
	Comment      string     `bencode:"comment,omitempty"`
	CreatedBy    string     `bencode:"created by,omitempty"`
	CreationDate int64      `bencode:"creation date,omitempty"`
	Info         I          `bencode:"info"`
}

func newTorrent[I bencodeInfo | bencodeMultiInfo](m *TorrentMeta, info I) bencodeTorrent[I] {
	bt := bencodeTorrent[I]{
		Announce:     m.Announce,
		AnnounceList: m.AnnounceList,
		Comment:      m.Comment,
		CreatedBy:    m.CreatedBy,
		Info:         info,
	}
	if !m.CreationDate.IsZero() {
		bt.CreationDate = m.CreationDate.Unix()
	}
	return bt
}

// toBencode returns the tagged value for the whole metafile and for its info
// dictionary alone.
func (m *TorrentMeta) toBencode() (torrent, info any, err error) {
	if m.Name == "" {
		return nil, nil, errors.New("metainfo: name is empty")
	}
	if m.PieceLength <= 0 {
		return nil, nil, fmt.Errorf("metainfo: invalid piece length %d", m.PieceLength)
	}

	var pieces bytes.Buffer
	for _, h := range m.Pieces {
		pieces.Write(h[:])
	}
	var private int64
	if m.Private {
		private = 1
	}

	if m.IsMultiFile() {
		mi := bencodeMultiInfo{
			Files:       make([]bencodeFile, 0, len(m.Files)),
			Name:        m.Name,
			PieceLength: m.PieceLength,
			Pieces:      pieces.String(),
			Private:     private,
		}
		for _, f := range m.Files {
			mi.Files = append(mi.Files, bencodeFile{Length: f.Length, Path: f.Path})
		}
		return newTorrent(m, mi), mi, nil
	}

	si := bencodeInfo{
		Length:      m.Length,
		Name:        m.Name,
		PieceLength: m.PieceLength,
		Pieces:      pieces.String(),
		Private:     private,
	}
	return newTorrent(m, si), si, nil
}

// Write serializes m as a metafile with keys in sorted order. Derived fields
// (InfoBytes, InfoHash) are ignored; parse the output to recompute them.
func Write(w io.Writer, m *TorrentMeta) error {
	bt, _, err := m.toBencode()
	if err != nil {
		return err
	}
	if err := bencode.Marshal(w, bt); err != nil {
		return fmt.Errorf("metainfo: marshal: %w", err)
	}
	return nil
}

func Marshal(m *TorrentMeta) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
