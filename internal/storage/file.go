package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxMetafileSize caps Load. Real metafiles are rarely above a few MiB.
const MaxMetafileSize = 64 << 20

// Load reads a whole metafile into memory, refusing anything larger than
// limit bytes (MaxMetafileSize when limit <= 0).
func Load(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxMetafileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("storage: %s is a directory", path)
	}
	if fi.Size() > limit {
		return nil, fmt.Errorf("storage: %s is %d bytes, limit %d", path, fi.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("storage: %s grew past limit %d", path, limit)
	}
	return data, nil
}

// Save writes data next to path and renames it into place, so readers never
// see a half-written file.
func Save(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
