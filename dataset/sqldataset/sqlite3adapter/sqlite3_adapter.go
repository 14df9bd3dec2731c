/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqldataset package that works over an SQLite3 database
file.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/Textualization/ML/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a limit to the DB
connections opened at a time (0 meaning no limit) and returns an
Adapter that works on the file's database or an error if it fails to
open as an SQLite3 database.
*/
func New(path string, maxDBConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxDBConns)
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Close() error {
	return a.db.Close()
}
