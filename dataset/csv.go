package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/teazrq/springer-surv/feature"
)

/*
ReadCSV takes an io.Reader for a CSV stream and the survival outcome
naming the time and event columns and returns the Observations parsed
from it or an error.

The header or first row of the CSV content is expected to contain the
outcome's time and event column names; every other header entry is
taken as an expression feature. The remaining rows must hold valid
float64 values for every column.
*/
func ReadCSV(reader io.Reader, out feature.Outcome) (*Observations, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	timeCol, eventCol := -1, -1
	var names []string
	var featureCols []int
	var features []feature.Feature
	for i, name := range header {
		switch name {
		case out.Time.Name():
			timeCol = i
		case out.Event.Name():
			eventCol = i
		default:
			names = append(names, name)
			featureCols = append(featureCols, i)
			features = append(features, feature.NewExpressionFeature(name))
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("parsing header: no time column %s", out.Time.Name())
	}
	if eventCol < 0 {
		return nil, fmt.Errorf("parsing header: no event column %s", out.Event.Name())
	}
	var matrix [][]float64
	var times []float64
	var events []int
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		values := make([]float64, len(featureCols))
		for k, i := range featureCols {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: converting %s to float64: %v", l, row[i], err)
			}
			if ok, err := features[k].Valid(v); !ok {
				return nil, fmt.Errorf("parsing line %d: %v", l, err)
			}
			values[k] = v
		}
		t, err := strconv.ParseFloat(row[timeCol], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: converting time %s: %v", l, row[timeCol], err)
		}
		if ok, err := out.Time.Valid(t); !ok {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		e, err := strconv.Atoi(row[eventCol])
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: converting event %s: %v", l, row[eventCol], err)
		}
		if ok, err := out.Event.Valid(float64(e)); !ok {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		matrix = append(matrix, values)
		times = append(times, t)
		events = append(events, e)
	}
	return New(names, matrix, times, events)
}

/*
ReadCSVFromFilePath takes a filepath string and a survival outcome,
opens the file the filepath points to and uses ReadCSV to return the
Observations read from it or an error. An empty filepath reads from
STDIN.
*/
func ReadCSVFromFilePath(filepath string, out feature.Outcome) (*Observations, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading observations: %v", err)
		}
		defer f.Close()
	}
	obs, err := ReadCSV(f, out)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return obs, err
}

/*
WriteCSV takes an io.Writer, an observation set and the survival
outcome naming the time and event columns and writes the observation
set as CSV with a header row, or returns an error.
*/
func WriteCSV(w io.Writer, obs *Observations, out feature.Outcome) error {
	cw := csv.NewWriter(w)
	names := obs.FeatureNames()
	header := append(append([]string(nil), names...), out.Time.Name(), out.Event.Name())
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}
	times := obs.Times()
	events := obs.Events()
	for i := 0; i < obs.Len(); i++ {
		row, err := obs.Row(i)
		if err != nil {
			return err
		}
		record := make([]string, 0, len(row)+2)
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		record = append(record, strconv.FormatFloat(times[i], 'g', -1, 64))
		record = append(record, strconv.Itoa(events[i]))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing subject %d: %v", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
