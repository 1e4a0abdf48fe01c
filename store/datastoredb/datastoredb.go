package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"google.golang.org/api/option"
)

const (
	testConnectivityKey = "testConnectivity"
)

// DatastoreDB implements the triviascot StringStorer interface. It maps
// the given name to the datastore entity Kind to isolate data between
// different storers
type DatastoreDB struct {
	datastorer
	kind string
}

// EntryValue represents an entity/entry value mapped to a datastore key
type EntryValue struct {
	Value string `datastore:",noindex"`
}

// New returns a new instance of DatastoreDB for the given name (which maps to the datastore entity "Kind" and can
// be thought of as the namespace). This function also requires a gcloudProjectID as well as at least one option to provide gcloud client credentials
func New(name string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	return newWithDatastorer(name, &gcdatastore{gcloudProjectID: gcloudProjectID, gcloudClientOpts: gcloudClientOpts})
}

// newWithDatastorer connects the datastorer and validates connectivity before returning a DatastoreDB using it
func newWithDatastorer(name string, ds datastorer) (dsdb *DatastoreDB, err error) {
	dsdb = &DatastoreDB{datastorer: ds, kind: name}

	if err = dsdb.connect(); err != nil {
		return nil, err
	}

	if err = dsdb.testDB(); err != nil {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// testDB makes a lightweight call to the datastore to validate connectivity and credentials
func (dsdb *DatastoreDB) testDB() (err error) {
	_, err = dsdb.GetString(testConnectivityKey)

	if err != nil && err != datastore.ErrNoSuchEntity {
		return err
	}

	return nil
}

// withReconnect runs the operation and, if it fails for any reason other than a missing entity, reconnects
// and tries it once more
func (dsdb *DatastoreDB) withReconnect(operation func() error) (err error) {
	err = operation()
	if err == nil || err == datastore.ErrNoSuchEntity {
		return err
	}

	if err = dsdb.connect(); err != nil {
		return err
	}

	return operation()
}

// GetString returns the value associated to a given key. If the value is not
// found or an error occurred, the zero-value string is returned along with
// the error
func (dsdb *DatastoreDB) GetString(key string) (value string, err error) {
	var e EntryValue
	k := datastore.NameKey(dsdb.kind, key, nil)

	err = dsdb.withReconnect(func() error {
		return dsdb.Get(context.Background(), k, &e)
	})
	if err != nil {
		return "", err
	}

	return e.Value, nil
}

// PutString stores the key/value to the database
func (dsdb *DatastoreDB) PutString(key string, value string) (err error) {
	k := datastore.NameKey(dsdb.kind, key, nil)

	return dsdb.withReconnect(func() error {
		_, err := dsdb.Put(context.Background(), k, &EntryValue{Value: value})
		return err
	})
}

// DeleteString deletes the entry for the given key
func (dsdb *DatastoreDB) DeleteString(key string) (err error) {
	k := datastore.NameKey(dsdb.kind, key, nil)

	return dsdb.withReconnect(func() error {
		return dsdb.Delete(context.Background(), k)
	})
}

// Scan returns all key/values from the database
func (dsdb *DatastoreDB) Scan() (entries map[string]string, err error) {
	var keys []*datastore.Key
	var vals []*EntryValue

	err = dsdb.withReconnect(func() (err error) {
		vals = nil
		keys, err = dsdb.GetAll(context.Background(), datastore.NewQuery(dsdb.kind), &vals)
		return err
	})
	if err != nil {
		return nil, err
	}

	entries = make(map[string]string)
	for i, key := range keys {
		if i < len(vals) {
			entries[key.Name] = vals[i].Value
		}
	}

	return entries, nil
}
