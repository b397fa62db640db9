// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var llog = dlog.New("backend", "goleveldb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoLevelDB(name, dir, cache)
	}
	registerDBCreator(LevelDBBackendStr, dbCreator, false)
	registerDBCreator(GoLevelDBBackendStr, dbCreator, false)
}

//GoLevelDB db
type GoLevelDB struct {
	db *leveldb.DB
}

//NewGoLevelDB new
func NewGoLevelDB(name string, dir string, cache int) (*GoLevelDB, error) {
	dbPath := path.Join(dir, name+".db")
	if cache <= 0 {
		cache = 128
	}
	handles := cache
	if handles < 16 {
		handles = 16
	}
	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		llog.Warn("NewGoLevelDB recover corrupted db", "path", dbPath)
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

//Get get
func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == errors.ErrNotFound {
			return nil, ErrNotFoundInDb
		}
		llog.Error("Get", "error", err)
		return nil, err
	}
	return res, nil
}

//Set set
func (db *GoLevelDB) Set(key []byte, value []byte) error {
	err := db.db.Put(key, value, nil)
	if err != nil {
		llog.Error("Set", "error", err)
	}
	return err
}

//Delete delete
func (db *GoLevelDB) Delete(key []byte) error {
	err := db.db.Delete(key, nil)
	if err != nil {
		llog.Error("Delete", "error", err)
	}
	return err
}

//Close close
func (db *GoLevelDB) Close() {
	if err := db.db.Close(); err != nil {
		llog.Error("Close", "error", err)
	}
}

//List 列表
func (db *GoLevelDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	it := db.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	values := listIterator(it, key, count, direction)
	if err := it.Error(); err != nil {
		llog.Error("List", "error", err)
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFoundInDb
	}
	return values, nil
}

//NewBatch new
func (db *GoLevelDB) NewBatch(sync bool) Batch {
	return &goLevelDBBatch{db: db, batch: new(leveldb.Batch), wop: &opt.WriteOptions{Sync: sync}}
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
	wop   *opt.WriteOptions
	size  int
}

func (b *goLevelDBBatch) Set(key, value []byte) {
	b.batch.Put(key, value)
	b.size += len(value)
}

func (b *goLevelDBBatch) Delete(key []byte) {
	b.batch.Delete(key)
	b.size++
}

func (b *goLevelDBBatch) Write() error {
	err := b.db.db.Write(b.batch, b.wop)
	if err != nil {
		llog.Error("Write", "error", err)
	}
	return err
}

func (b *goLevelDBBatch) ValueSize() int {
	return b.size
}

func (b *goLevelDBBatch) Reset() {
	b.batch.Reset()
	b.size = 0
}
