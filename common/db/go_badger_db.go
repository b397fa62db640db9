// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"path"

	"github.com/dgraph-io/badger"
)

var blog = dlog.New("backend", "badger")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(BadgerDBBackendStr, dbCreator, false)
}

//GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

//NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	dbPath := path.Join(dir, name+".db")
	opts := badger.DefaultOptions(dbPath)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

//Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		blog.Error("Get", "error", err)
		return nil, err
	}
	return val, nil
}

//Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		blog.Error("Set", "error", err)
	}
	return err
}

//Delete delete
func (db *GoBadgerDB) Delete(key []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		blog.Error("Delete", "error", err)
	}
	return err
}

//Close close
func (db *GoBadgerDB) Close() {
	if err := db.db.Close(); err != nil {
		blog.Error("Close", "error", err)
	}
}

//List badger 的迭代器是单向的, 倒序时使用 Reverse 迭代器
func (db *GoBadgerDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	var values [][]byte
	err := db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = direction == ListDESC
		it := txn.NewIterator(opts)
		defer it.Close()
		switch {
		case len(key) != 0:
			it.Seek(key)
			if it.Valid() && bytes.Equal(it.Item().Key(), key) {
				it.Next()
			}
		case direction == ListASC:
			it.Seek(prefix)
		default:
			end := prefixEnd(prefix)
			if end == nil {
				it.Rewind()
			} else {
				it.Seek(end)
				if it.Valid() && bytes.Equal(it.Item().Key(), end) {
					it.Next()
				}
			}
		}
		for ; it.ValidForPrefix(prefix); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
			if count > 0 && int32(len(values)) >= count {
				break
			}
		}
		return nil
	})
	if err != nil {
		blog.Error("List", "error", err)
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFoundInDb
	}
	return values, nil
}

//NewBatch 所有操作在 Write 时放入同一个 badger 事务
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &goBadgerDBBatch{db: db}
}

type goBadgerDBBatch struct {
	db   *GoBadgerDB
	ops  []batchOp
	size int
}

func (b *goBadgerDBBatch) Set(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), value: CopyBytes(value)})
	b.size += len(value)
}

func (b *goBadgerDBBatch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), del: true})
	b.size++
}

func (b *goBadgerDBBatch) Write() error {
	err := b.db.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			var err error
			if op.del {
				err = txn.Delete(op.key)
			} else {
				err = txn.Set(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		blog.Error("Write", "error", err)
	}
	return err
}

func (b *goBadgerDBBatch) ValueSize() int {
	return b.size
}

func (b *goBadgerDBBatch) Reset() {
	b.ops = nil
	b.size = 0
}
