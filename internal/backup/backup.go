// Package backup packages the bot's in-memory state (tickets, referral
// graph, bonus balances and reviews) into zip archives and restores it
// back. Each archive holds data.json with the tables and metadata.json
// with a timestamp and per-table record counts.
package backup

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"clientbot/internal/models"
)

const formatVersion = "1.0"

// Data is the set of tables captured in one archive.
type Data struct {
	Tickets   []models.Ticket   `json:"tickets"`
	Referrals map[int64][]int64 `json:"referrals"`
	Bonuses   map[int64]int     `json:"bonuses"`
	Reviews   []models.Review   `json:"reviews"`
}

// Metadata describes an archive for auditability.
type Metadata struct {
	CreatedAt time.Time      `json:"created_at"`
	Version   string         `json:"backup_version"`
	Records   map[string]int `json:"records_count"`
}

// Info is one entry of the archive listing.
type Info struct {
	Filename string
	Path     string
	SizeKB   float64
	Metadata *Metadata
}

// Manager creates, lists, restores and deletes backup archives in a
// single directory.
type Manager struct {
	dir    string
	logger *zap.Logger
}

// NewManager creates the backup directory if needed.
func NewManager(dir string, logger *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &Manager{dir: dir, logger: logger}, nil
}

// Path resolves an archive filename to its path in the backup dir.
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.dir, filepath.Base(filename))
}

// Create writes a new archive and returns its path.
func (m *Manager) Create(data Data) (string, error) {
	name := fmt.Sprintf("backup_%s.zip", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if err := writeJSONEntry(zw, "data.json", data); err != nil {
		zw.Close()
		os.Remove(path)
		return "", err
	}

	meta := Metadata{
		CreatedAt: time.Now(),
		Version:   formatVersion,
		Records: map[string]int{
			"tickets":   len(data.Tickets),
			"referrals": len(data.Referrals),
			"bonuses":   len(data.Bonuses),
			"reviews":   len(data.Reviews),
		},
	}
	if err := writeJSONEntry(zw, "metadata.json", meta); err != nil {
		zw.Close()
		os.Remove(path)
		return "", err
	}

	if err := zw.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("finalize archive: %w", err)
	}

	m.logger.Info("Backup created", zap.String("file", name))
	return path, nil
}

func writeJSONEntry(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s entry: %w", name, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

// List returns all archives, newest first. Archives whose metadata
// cannot be read are still listed, with nil Metadata.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "backup_") || !strings.HasSuffix(name, ".zip") {
			continue
		}

		path := filepath.Join(m.dir, name)
		info := Info{Filename: name, Path: path}

		if fi, err := entry.Info(); err == nil {
			info.SizeKB = float64(fi.Size()) / 1024
		}

		meta, err := readMetadata(path)
		if err != nil {
			m.logger.Warn("Failed to read backup metadata",
				zap.String("file", name), zap.Error(err))
		} else {
			info.Metadata = meta
		}

		backups = append(backups, info)
	}

	// Timestamped names sort chronologically.
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Filename > backups[j].Filename
	})
	return backups, nil
}

func readMetadata(path string) (*Metadata, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var meta Metadata
	if err := readJSONEntry(&zr.Reader, "metadata.json", &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Restore reads the tables back from an archive.
func (m *Manager) Restore(path string) (Data, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Data{}, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var data Data
	if err := readJSONEntry(&zr.Reader, "data.json", &data); err != nil {
		return Data{}, err
	}

	m.logger.Info("Backup restored", zap.String("file", filepath.Base(path)))
	return data, nil
}

func readJSONEntry(zr *zip.Reader, name string, out any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s entry: %w", name, err)
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %s entry: %w", name, err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("archive has no %s", name)
}

// Delete removes an archive.
func (m *Manager) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	m.logger.Info("Backup deleted", zap.String("file", filepath.Base(path)))
	return nil
}

// CleanupOld removes all but the newest keep archives.
func (m *Manager) CleanupOld(keep int) error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= keep {
		return nil
	}

	for _, b := range backups[keep:] {
		if err := m.Delete(b.Path); err != nil {
			return err
		}
	}
	m.logger.Info("Old backups removed", zap.Int("count", len(backups)-keep))
	return nil
}
