package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/symbolic"
)

const (
	metadataFile     = "metadata.json"
	descriptionsFile = "descriptions.csv"
)

// Store keeps built models on disk, one directory per build.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BuildMetadata struct {
	ID        string           `json:"id"`
	Model     string           `json:"model"`
	Preset    string           `json:"preset,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Symbols   int              `json:"symbols"`
	System    symbolic.Summary `json:"system"`
}

// Row is one line of descriptions.csv.
type Row struct {
	Symbol      string
	Dynamic     bool
	Owner       string
	Description string
}

func Rows(entries []assembly.Entry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Symbol: e.Symbol.Name(), Dynamic: e.Symbol.IsDynamic(), Owner: e.Owner, Description: e.Description}
	}
	return rows
}

func (s *Store) Save(model, preset string, entries []assembly.Entry, sys *symbolic.System) (string, error) {
	now := time.Now()
	buildID := fmt.Sprintf("%s_%d", model, now.UnixNano())
	dir := filepath.Join(s.baseDir, buildID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := BuildMetadata{
		ID:        buildID,
		Model:     model,
		Preset:    preset,
		Timestamp: now,
		Symbols:   len(entries),
		System:    sys.Summary(),
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeRows(filepath.Join(dir, descriptionsFile), Rows(entries)); err != nil {
		return "", err
	}
	return buildID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRows(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"symbol", "dynamic", "owner", "description"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Symbol, strconv.FormatBool(r.Dynamic), r.Owner, r.Description}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored build, oldest first.
func (s *Store) List() ([]BuildMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BuildMetadata{}, nil
		}
		return nil, err
	}

	builds := make([]BuildMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		builds = append(builds, *meta)
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i].Timestamp.Before(builds[j].Timestamp) })
	return builds, nil
}

func (s *Store) Load(buildID string) (*BuildMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, buildID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta BuildMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadDescriptions(buildID string) ([]Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, buildID, descriptionsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		dynamic, err := strconv.ParseBool(rec[1])
		if err != nil {
			return nil, fmt.Errorf("store: symbol %s: %w", rec[0], err)
		}
		rows = append(rows, Row{Symbol: rec[0], Dynamic: dynamic, Owner: rec[2], Description: rec[3]})
	}
	return rows, nil
}
