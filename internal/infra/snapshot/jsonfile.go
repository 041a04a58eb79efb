package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// JSONFile keeps the whole collection as a single JSON array on disk.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the backing file. A missing file is created holding an empty
// array; a file that is not a JSON array of appointments is an error.
func (f *JSONFile) Load() ([]models.Appointment, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := f.Save(nil); err != nil {
				return nil, fmt.Errorf("create %s: %w", f.path, err)
			}
			return []models.Appointment{}, nil
		}
		return nil, err
	}

	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return list, nil
}

// Save rewrites the backing file through a temp file + rename so readers
// never observe a half-written array.
func (f *JSONFile) Save(list []models.Appointment) error {
	data, err := Encode(list)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".agendamentos-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpName, f.path)
}

// Encode renders the collection in the backing-file format. A nil
// collection is written as [] rather than null.
func Encode(list []models.Appointment) ([]byte, error) {
	if list == nil {
		list = []models.Appointment{}
	}
	return json.Marshal(list)
}

// Decode reads the backing-file format. Files written by other clients may
// hold numbers, booleans or null in the string fields; those are kept as
// their JSON text (null becomes "").
func Decode(data []byte) ([]models.Appointment, error) {
	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	list := make([]models.Appointment, 0, len(records))
	for _, r := range records {
		list = append(list, r.toAppointment())
	}
	return list, nil
}

type fileRecord struct {
	ID          looseString `json:"id"`
	Tipo        looseString `json:"tipo"`
	Nome        looseString `json:"nome"`
	Data        looseString `json:"data"`
	HoraInicio  looseString `json:"horaInicio"`
	HoraTermino looseString `json:"horaTermino"`
	Responsavel looseString `json:"responsavel"`
}

func (r fileRecord) toAppointment() models.Appointment {
	return models.Appointment{
		ID:          string(r.ID),
		Tipo:        string(r.Tipo),
		Nome:        string(r.Nome),
		Data:        string(r.Data),
		HoraInicio:  string(r.HoraInicio),
		HoraTermino: string(r.HoraTermino),
		Responsavel: string(r.Responsavel),
	}
}

type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		*s = looseString(b)
	}
	return nil
}
