package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"torrent-bencode/internal/bencode"
	"torrent-bencode/internal/metainfo"
	"torrent-bencode/internal/peerid"
	"torrent-bencode/internal/storage"
)

func run(w io.Writer, logger *slog.Logger, command string, args []string) error {
	logger.Info("running command", "command", command, "args", len(args))
	if len(args) == 0 {
		return fmt.Errorf("%s: missing argument", command)
	}

	switch command {
	case "decode":
		return decodeCmd(w, logger, args[0])
	case "print":
		return printCmd(w, logger, args[0])
	case "get":
		return getCmd(w, logger, args[0], args[1:])
	case "info":
		return infoCmd(w, logger, args[0])
	case "reencode":
		if len(args) < 2 {
			return fmt.Errorf("reencode needs an input and an output file")
		}
		return reencodeCmd(w, logger, args[0], args[1])
	case "peerid":
		return peeridCmd(w, args[0])
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func decodeCmd(w io.Writer, logger *slog.Logger, bencodedValue string) error {
	v, _, err := bencode.Decode([]byte(bencodedValue), bencode.WithLogger(logger))
	if err != nil {
		return err
	}

	native, err := bencode.Native(v)
	if err != nil {
		return err
	}

	jsonOutput, err := json.Marshal(jsonable(native))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(jsonOutput))
	return nil
}

// jsonable swaps blobs for hex so they don't come out as base64.
func jsonable(v any) any {
	switch v := v.(type) {
	case []byte:
		return hex.EncodeToString(v)
	case []any:
		for i := range v {
			v[i] = jsonable(v[i])
		}
	case map[string]any:
		for k := range v {
			v[k] = jsonable(v[k])
		}
	}
	return v
}

func loadTree(logger *slog.Logger, file string) (bencode.Bvalue, error) {
	data, err := storage.Load(file, 0)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", file, err)
	}

	v, _, err := bencode.Decode(data, bencode.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return v, nil
}

func printCmd(w io.Writer, logger *slog.Logger, file string) error {
	v, err := loadTree(logger, file)
	if err != nil {
		return err
	}
	defer bencode.Release(v)

	return bencode.Fprint(w, v)
}

func getCmd(w io.Writer, logger *slog.Logger, file string, keys []string) error {
	v, err := loadTree(logger, file)
	if err != nil {
		return err
	}
	defer bencode.Release(v)

	found, err := bencode.Path(v, keys...)
	if err != nil {
		return err
	}
	return bencode.Fprint(w, found)
}

func infoCmd(w io.Writer, logger *slog.Logger, file string) error {
	data, err := storage.Load(file, 0)
	if err != nil {
		return fmt.Errorf("error reading %q: %w", file, err)
	}

	meta, err := metainfo.ParseTorrent(data, bencode.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	fmt.Fprintf(w, "Name: %s\n", meta.Name)
	fmt.Fprintf(w, "Tracker URL: %s\n", meta.Announce)
	for i, tier := range meta.AnnounceList {
		fmt.Fprintf(w, "Tier %d: %v\n", i, tier)
	}
	if meta.Comment != "" {
		fmt.Fprintf(w, "Comment: %s\n", meta.Comment)
	}
	if meta.CreatedBy != "" {
		fmt.Fprintf(w, "Created By: %s\n", meta.CreatedBy)
	}
	if !meta.CreationDate.IsZero() {
		fmt.Fprintf(w, "Creation Date: %s\n", meta.CreationDate.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(w, "Length: %d\n", meta.Length)
	for _, f := range meta.Files {
		fmt.Fprintf(w, "File: %v (%d)\n", f.Path, f.Length)
	}
	fmt.Fprintf(w, "Private: %t\n", meta.Private)
	fmt.Fprintf(w, "Info Hash: %x\n", meta.InfoHash)
	fmt.Fprintf(w, "Piece Length: %d\n", meta.PieceLength)

	if n := meta.NumPieces(); n > 0 {
		last, err := meta.PieceSize(n - 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Pieces: %d (last %d bytes)\n", n, last)
	}

	fmt.Fprintln(w, "Piece Hashes:")
	for _, h := range meta.Pieces {
		fmt.Fprintf(w, "%x\n", h)
	}
	return nil
}

func reencodeCmd(w io.Writer, logger *slog.Logger, in, out string) error {
	data, err := storage.Load(in, 0)
	if err != nil {
		return fmt.Errorf("error reading %q: %w", in, err)
	}

	v, n, err := bencode.Decode(data, bencode.WithLogger(logger), bencode.WithStrict())
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	defer bencode.Release(v)

	encoded, err := bencode.Encode(v)
	if err != nil {
		return err
	}
	if err := storage.Save(out, encoded); err != nil {
		return fmt.Errorf("error writing %q: %w", out, err)
	}

	identical := bytes.Equal(encoded, data[:n])
	logger.Debug("reencoded", "in", in, "out", out, "bytes", len(encoded), "identical", identical)
	fmt.Fprintf(w, "wrote %d bytes to %s (identical: %t)\n", len(encoded), out, identical)
	return nil
}

func peeridCmd(w io.Writer, seed string) error {
	id := peerid.Generate(seed)
	fmt.Fprintf(w, "%s%x\n", id[:len(peerid.Prefix)], id[len(peerid.Prefix):])
	return nil
}
