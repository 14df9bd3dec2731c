/*
Package mongodataset loads labeled datasets from collections on a
MongoDB database. Documents are expected to carry one property per
feature, named after it.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/Textualization/ML/dataset"
	"github.com/Textualization/ML/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Open takes a MongoDB connection URL and returns a session on the
database or an error if it fails to connect.
*/
func Open(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %v", err)
	}
	return session, nil
}

/*
Read takes a context, a session, a database and collection name, an
ordered slice of features defining the dataset's columns and a label
feature, and returns a labeled dataset with every document of the
collection or an error. Documents missing a feature property carry a
nil value for it.
*/
func Read(ctx context.Context, session *mgo.Session, db, collection string, features []feature.Feature, label feature.Feature) (*dataset.Labeled, error) {
	iter := session.DB(db).C(collection).Find(bson.M{}).Iter()
	defer iter.Close()

	var samples [][]interface{}
	var labels []interface{}
	doc := bson.M{}
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sample := make([]interface{}, len(features))
		for i, f := range features {
			value, err := coerce(f, doc[f.Name()])
			if err != nil {
				return nil, fmt.Errorf("document %d of collection %s: %v", len(samples)+1, collection, err)
			}
			sample[i] = value
		}
		labelValue, err := coerce(label, doc[label.Name()])
		if err != nil {
			return nil, fmt.Errorf("document %d of collection %s: %v", len(samples)+1, collection, err)
		}
		samples = append(samples, sample)
		labels = append(labels, labelValue)
		doc = bson.M{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading collection %s: %v", collection, err)
	}
	return dataset.NewLabeled(samples, labels)
}

// coerce maps the value types bson decoding produces onto the
// feature's value type.
func coerce(f feature.Feature, v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case float64:
		if ok, err := f.Valid(value); !ok {
			return nil, err
		}
		return value, nil
	case int:
		if _, ok := f.(*feature.ContinuousFeature); ok {
			return float64(value), nil
		}
		return f.Parse(fmt.Sprintf("%d", value))
	case int64:
		if _, ok := f.(*feature.ContinuousFeature); ok {
			return float64(value), nil
		}
		return f.Parse(fmt.Sprintf("%d", value))
	case string:
		return f.Parse(value)
	}
	return nil, fmt.Errorf("unsupported %T value for feature %s", v, f.Name())
}
