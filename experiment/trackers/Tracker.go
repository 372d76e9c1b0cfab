// Package trackers implements Trackers, which track and save data in an
// experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/gemgrid/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// LoadData loads and returns the data saved by a Return Tracker
func LoadData(filename string) ([]float64, error) {
	var data []float64
	if err := load(filename, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadLengths loads and returns the data saved by an EpisodeLength
// Tracker
func LoadLengths(filename string) ([]int, error) {
	var data []int
	if err := load(filename, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func load(filename string, data interface{}) error {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open data file: %w", err)
	}
	defer file.Close()

	// Decode the data
	dec := gob.NewDecoder(file)
	if err = dec.Decode(data); err != nil {
		return fmt.Errorf("load: could not decode data: %w", err)
	}
	return nil
}

func save(filename string, data interface{}) error {
	// Open the file to save to
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %w", err)
	}
	return nil
}
