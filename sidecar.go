package fenc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SidecarPath returns the metadata path for a given file, in the same
// directory as the file.
func SidecarPath(filename string) string {
	dir, base := filepath.Split(filename)
	return filepath.Join(dir, SidecarPrefix+base)
}

// OriginalFromSidecar strips the sidecar prefix from a metadata
// filename, yielding the original file's name. Search mode discovers
// sidecars by their metadata path but must report the original
// filename to the user regardless of that internal representation.
func OriginalFromSidecar(sidecarName string) (string, bool) {
	dir, base := filepath.Split(sidecarName)
	if len(base) <= len(SidecarPrefix) || base[:len(SidecarPrefix)] != SidecarPrefix {
		return "", false
	}
	return filepath.Join(dir, base[len(SidecarPrefix):]), true
}

// hasSidecar reports whether filename currently has a sidecar on disk.
func hasSidecar(filename string) bool {
	_, err := os.Stat(SidecarPath(filename))
	return err == nil
}

// readSidecar loads and parses the sidecar JSON for filename.
func readSidecar(filename string) (*Sidecar, error) {
	data, err := os.ReadFile(SidecarPath(filename))
	if err != nil {
		return nil, fmt.Errorf("fenc: failed to read sidecar for %s: %w", filename, err)
	}

	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("fenc: failed to parse sidecar for %s: %w", filename, err)
	}
	return &sc, nil
}

// writeSidecar serializes sc with default JSON formatting and writes
// it to filename's sidecar path.
func writeSidecar(filename string, sc *Sidecar) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("fenc: failed to serialize sidecar for %s: %w", filename, err)
	}
	if err := os.WriteFile(SidecarPath(filename), data, 0o600); err != nil {
		return fmt.Errorf("fenc: failed to write sidecar for %s: %w", filename, err)
	}
	return nil
}

// removeSidecar deletes the sidecar for filename.
func removeSidecar(filename string) error {
	if err := os.Remove(SidecarPath(filename)); err != nil {
		return fmt.Errorf("fenc: failed to remove sidecar for %s: %w", filename, err)
	}
	return nil
}

// listSidecars returns the sidecar filenames present in dir.
func listSidecars(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fenc: failed to enumerate directory %s: %w", dir, err)
	}

	var sidecars []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) > len(SidecarPrefix) && name[:len(SidecarPrefix)] == SidecarPrefix {
			sidecars = append(sidecars, filepath.Join(dir, name))
		}
	}
	return sidecars, nil
}
