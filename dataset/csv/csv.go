/*
Package csv reads labeled datasets from CSV streams and writes them
back. The CSV is expected to carry a header row naming its columns;
feature metadata decides how each cell is parsed.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/feature"
)

/*
ReadLabeled takes an io.Reader for a CSV stream, an ordered slice of
features defining the dataset's columns and a label feature, and
returns a labeled dataset with the parsed samples or an error. The CSV
header must name a column for every feature and for the label; extra
CSV columns are ignored.
*/
func ReadLabeled(r io.Reader, features []feature.Feature, label feature.Feature) (*dataset.Labeled, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %v", err)
	}
	columns := make([]int, len(features))
	for i, f := range features {
		columns[i], err = headerIndex(header, f.Name())
		if err != nil {
			return nil, err
		}
	}
	labelColumn, err := headerIndex(header, label.Name())
	if err != nil {
		return nil, err
	}

	var samples [][]interface{}
	var labels []interface{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %v", line, err)
		}
		sample := make([]interface{}, len(features))
		for i, f := range features {
			sample[i], err = f.Parse(record[columns[i]])
			if err != nil {
				return nil, fmt.Errorf("reading CSV line %d: %v", line, err)
			}
		}
		labelValue, err := label.Parse(record[labelColumn])
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %v", line, err)
		}
		samples = append(samples, sample)
		labels = append(labels, labelValue)
	}
	return dataset.NewLabeled(samples, labels)
}

/*
WriteLabeled takes an io.Writer, a labeled dataset, the ordered slice
of features defining its columns and a label feature, and writes the
dataset as CSV with a header row onto the writer.
*/
func WriteLabeled(w io.Writer, d *dataset.Labeled, features []feature.Feature, label feature.Feature) error {
	cw := csv.NewWriter(w)
	header := append(feature.Names(features), label.Name())
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	record := make([]string, len(features)+1)
	for i := 0; i < d.NumSamples(); i++ {
		for j, v := range d.Sample(i) {
			record[j] = formatCell(v)
		}
		record[len(features)] = formatCell(d.Label(i))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV sample %d: %v", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

/*
ReadSamples takes an io.Reader for a CSV stream and an ordered slice of
features and returns the unlabeled feature vectors parsed from it, for
feeding to a grown tree's Search.
*/
func ReadSamples(r io.Reader, features []feature.Feature) ([][]interface{}, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %v", err)
	}
	columns := make([]int, len(features))
	for i, f := range features {
		columns[i], err = headerIndex(header, f.Name())
		if err != nil {
			return nil, err
		}
	}
	var samples [][]interface{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %v", line, err)
		}
		sample := make([]interface{}, len(features))
		for i, f := range features {
			sample[i], err = f.Parse(record[columns[i]])
			if err != nil {
				return nil, fmt.Errorf("reading CSV line %d: %v", line, err)
			}
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func headerIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("CSV has no column named '%s'", name)
}

func formatCell(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%g", f)
	}
	return fmt.Sprintf("%v", v)
}
