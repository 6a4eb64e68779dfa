package configfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/breakledger/internal/codec"
	"github.com/roach88/breakledger/internal/config"
)

// Load reads the document at path. A missing file is a fresh project and
// loads as config.Empty().
func Load(path string) (config.Document, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return config.Document{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, starting empty", "path", path)
		return config.Empty(), nil
	}
	if err != nil {
		return config.Document{}, fmt.Errorf("read config: %w", err)
	}

	doc, err := c.Decode(data)
	if err != nil {
		return config.Document{}, fmt.Errorf("load %s: %w", path, err)
	}

	slog.Debug("config loaded",
		"path", path,
		"format", c.Format(),
		"versions", doc.AcceptedBreaksV2().Len(),
		"legacy_versions", doc.LegacyAcceptedBreaks().Len(),
		"overrides", doc.VersionOverrides().Len(),
	)
	return doc, nil
}

// Save encodes doc for the extension of path and replaces the file
// atomically. Parent directories are created as needed.
func Save(path string, doc config.Document) error {
	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}

	data, err := c.Encode(doc)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	slog.Debug("config saved", "path", path, "format", c.Format(), "bytes", len(data))
	return nil
}

// defaultFileMode applies to config files that do not exist yet.
const defaultFileMode os.FileMode = 0o644

// writeAtomic writes to a temp file in the target directory and renames it
// over path, so readers never observe a partial file. An existing file keeps
// its permission bits.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	mode := defaultFileMode
	info, err := os.Stat(path)
	switch {
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat config file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
