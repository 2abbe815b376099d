package matrix

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalJSON encodes the matrix as nested rows.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

// UnmarshalJSON decodes nested rows and validates the shape.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	return m.setRows(rows)
}

// MarshalMsgpack encodes the matrix as nested rows.
func (m *Matrix) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(m.Rows())
}

// UnmarshalMsgpack decodes nested rows and validates the shape.
func (m *Matrix) UnmarshalMsgpack(data []byte) error {
	var rows [][]float64
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return err
	}
	return m.setRows(rows)
}

func (m *Matrix) setRows(rows [][]float64) error {
	parsed, err := FromRows(rows)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// Save writes the matrix to path. Files ending in .msgpack or .mp are written
// in msgpack, everything else as JSON.
func Save(path string, m *Matrix) error {
	var (
		data []byte
		err  error
	)
	if isMsgpack(path) {
		data, err = msgpack.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, "encode matrix")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write matrix %s", path)
	}
	return nil
}

// Load reads a matrix written by Save.
func Load(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read matrix %s", path)
	}
	m := new(Matrix)
	if isMsgpack(path) {
		err = msgpack.Unmarshal(data, m)
	} else {
		err = json.Unmarshal(data, m)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode matrix %s", path)
	}
	return m, nil
}

func isMsgpack(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return true
	}
	return false
}
