/*
Package mongodataset provides a read-only MongoDB backend for
observation sets.
*/
package mongodataset

import (
	"context"
	"fmt"
	"sort"

	"github.com/teazrq/springer-surv/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const observationsCollectionName = "observations"

/*
Read takes a context.Context, a MongoDB database session, the name of
a database and the names of the time and event fields and returns the
Observations stored on its observations collection or an error.

Each document is expected to carry a features subdocument mapping
feature names to numeric values plus the named time and event fields.
The feature set of the snapshot is the sorted union of the feature
names of the first document; every document must carry the same names.
*/
func Read(ctx context.Context, session *mgo.Session, db, timeName, eventName string) (*dataset.Observations, error) {
	coll := session.DB(db).C(observationsCollectionName)
	iter := coll.Find(bson.M{}).Iter()
	defer iter.Close()
	var names []string
	var matrix [][]float64
	var times []float64
	var events []int
	var doc bson.M
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if names == nil {
			features, ok := doc["features"].(bson.M)
			if !ok {
				return nil, fmt.Errorf("subject %d has no features subdocument", len(matrix))
			}
			for name := range features {
				names = append(names, name)
			}
			sort.Strings(names)
		}
		row, t, e, err := subjectValues(doc, names, timeName, eventName)
		if err != nil {
			return nil, fmt.Errorf("subject %d: %v", len(matrix), err)
		}
		matrix = append(matrix, row)
		times = append(times, t)
		events = append(events, e)
		doc = bson.M{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading observations from mongodb: %v", err)
	}
	return dataset.New(names, matrix, times, events)
}

// subjectValues extracts a subject's feature row and outcome from its
// document, looking the time and event up by their configured field
// names.
func subjectValues(doc bson.M, names []string, timeName, eventName string) ([]float64, float64, int, error) {
	features, ok := doc["features"].(bson.M)
	if !ok {
		return nil, 0, 0, fmt.Errorf("document has no features subdocument")
	}
	row := make([]float64, len(names))
	for i, name := range names {
		v, present := features[name]
		if !present {
			return nil, 0, 0, fmt.Errorf("missing feature %s", name)
		}
		x, ok := numeric(v)
		if !ok {
			return nil, 0, 0, fmt.Errorf("feature %s has non-numeric value %v", name, v)
		}
		row[i] = x
	}
	t, ok := numeric(doc[timeName])
	if !ok {
		return nil, 0, 0, fmt.Errorf("missing or non-numeric %s field", timeName)
	}
	e, ok := numeric(doc[eventName])
	if !ok {
		return nil, 0, 0, fmt.Errorf("missing or non-numeric %s field", eventName)
	}
	return row, t, int(e), nil
}

// numeric widens the number types bson decoding can produce.
func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
