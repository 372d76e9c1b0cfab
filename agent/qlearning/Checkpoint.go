package qlearning

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// qTableData is the serialized form of a QTable
type qTableData struct {
	Values       []byte
	Materialized []bool
}

// GobEncode implements the gob.GobEncoder interface
func (q *QTable) GobEncode() ([]byte, error) {
	values, err := q.values.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gobEncode: could not marshal values: %w", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(qTableData{values, q.materialized}); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode table: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (q *QTable) GobDecode(in []byte) error {
	var data qTableData
	dec := gob.NewDecoder(bytes.NewReader(in))
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("gobDecode: could not decode table: %w", err)
	}

	var values mat.Dense
	if err := values.UnmarshalBinary(data.Values); err != nil {
		return fmt.Errorf("gobDecode: could not unmarshal values: %w", err)
	}
	if rows, _ := values.Dims(); rows != len(data.Materialized) {
		return fmt.Errorf("gobDecode: %d rows but %d state flags", rows,
			len(data.Materialized))
	}

	count := 0
	for _, ok := range data.Materialized {
		if ok {
			count++
		}
	}

	q.values = &values
	q.materialized = data.Materialized
	q.count = count
	return nil
}

// Save gob-encodes the table to filename
func (q *QTable) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(q); err != nil {
		return fmt.Errorf("save: could not encode table: %w", err)
	}
	return nil
}

// LoadQTable loads a table saved with Save
func LoadQTable(filename string) (*QTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadQTable: could not open file: %w", err)
	}
	defer file.Close()

	q := &QTable{}
	dec := gob.NewDecoder(file)
	if err := dec.Decode(q); err != nil {
		return nil, fmt.Errorf("loadQTable: could not decode table: %w", err)
	}
	return q, nil
}
