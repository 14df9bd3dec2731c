/*
Package sqldataset loads labeled datasets from tables on SQL databases.
It works through an Adapter interface so the same loading logic serves
different SQL backends; the sqlite3adapter and pgadapter sub-packages
provide implementations for SQLite3 files and PostgreSQL databases.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/feature"
)

/*
Adapter gives access to a SQL database holding sample data.
*/
type Adapter interface {
	// ColumnName validates a feature name and returns the column
	// name to select it with, or an error if the feature name
	// cannot be used on the backend.
	ColumnName(featureName string) (string, error)
	// DB returns the database handle queries are run on.
	DB() *sql.DB
	// Close closes the underlying database handle.
	Close() error
}

/*
Read takes a context, an adapter, a table name, an ordered slice of
features defining the dataset's columns and a label feature, and
returns a labeled dataset with every row of the table or an error.
*/
func Read(ctx context.Context, a Adapter, table string, features []feature.Feature, label feature.Feature) (*dataset.Labeled, error) {
	if strings.ContainsAny(table, `"`) {
		return nil, fmt.Errorf(`table name '%s' contains invalid character '"'`, table)
	}
	columns := make([]string, 0, len(features)+1)
	for _, f := range append(append([]feature.Feature{}, features...), label) {
		column, err := a.ColumnName(f.Name())
		if err != nil {
			return nil, err
		}
		columns = append(columns, fmt.Sprintf("%q", column))
	}
	query := fmt.Sprintf(`SELECT %s FROM "%s"`, strings.Join(columns, ", "), table)
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()

	var samples [][]interface{}
	var labels []interface{}
	values := make([]interface{}, len(features)+1)
	pointers := make([]interface{}, len(values))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scanning row %d of table %s: %v", len(samples)+1, table, err)
		}
		sample := make([]interface{}, len(features))
		for i, f := range features {
			sample[i], err = coerce(f, values[i])
			if err != nil {
				return nil, fmt.Errorf("row %d of table %s: %v", len(samples)+1, table, err)
			}
		}
		labelValue, err := coerce(label, values[len(features)])
		if err != nil {
			return nil, fmt.Errorf("row %d of table %s: %v", len(samples)+1, table, err)
		}
		samples = append(samples, sample)
		labels = append(labels, labelValue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	return dataset.NewLabeled(samples, labels)
}

// coerce maps the value types SQL drivers produce onto the feature's
// value type.
func coerce(f feature.Feature, v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case float64:
		if ok, err := f.Valid(value); !ok {
			return nil, err
		}
		return value, nil
	case int64:
		if _, ok := f.(*feature.ContinuousFeature); ok {
			return float64(value), nil
		}
		return f.Parse(fmt.Sprintf("%d", value))
	case []byte:
		return f.Parse(string(value))
	case string:
		return f.Parse(value)
	}
	return nil, fmt.Errorf("unsupported %T value for feature %s", v, f.Name())
}
