package venv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/morsellabs/dashci/internal/core/domain"
)

// stampPath returns the stamp file location for the workspace's environment.
// The file is keyed by the environment directory so a reconfigured env dir
// gets its own stamp.
func stampPath(ws domain.Workspace) string {
	name := fmt.Sprintf("%016x.json", xxhash.Sum64String(ws.EnvPath()))
	return filepath.Join(ws.StampCachePath(), name)
}

// LoadStamp reads an environment stamp from disk.
func LoadStamp(path string) (domain.EnvStamp, error) {
	//nolint:gosec // Path is constructed from the trusted stamp cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.EnvStamp{}, domain.ErrCacheMiss
		}
		return domain.EnvStamp{}, zerr.Wrap(domain.ErrStampReadFailed, err.Error())
	}

	var stamp domain.EnvStamp
	if err := json.Unmarshal(data, &stamp); err != nil {
		return domain.EnvStamp{}, zerr.Wrap(domain.ErrStampReadFailed, err.Error())
	}

	return stamp, nil
}

// SaveStamp writes an environment stamp atomically.
func SaveStamp(path string, stamp domain.EnvStamp) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}

	data, err := json.MarshalIndent(stamp, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}

	// Write to a temp file in the same directory, then rename into place.
	tmpFile, err := os.CreateTemp(dir, "stamp-*.json")
	if err != nil {
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}

	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(domain.ErrStampWriteFailed, err.Error())
	}

	return nil
}
