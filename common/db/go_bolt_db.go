// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"path"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltlog = dlog.New("backend", "bbolt")

var boltBucket = []byte("raffle")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewBoltDB(name, dir, cache)
	}
	registerDBCreator(BoltDBBackendStr, dbCreator, false)
}

//BoltDB 单个 bucket 的 bbolt 数据库
type BoltDB struct {
	db *bolt.DB
}

//NewBoltDB new
func NewBoltDB(name string, dir string, cache int) (*BoltDB, error) {
	dbPath := path.Join(dir, name+".bolt")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

//Get get
func (db *BoltDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(tx *bolt.Tx) error {
		val = CopyBytes(tx.Bucket(boltBucket).Get(key))
		return nil
	})
	if err != nil {
		boltlog.Error("Get", "error", err)
		return nil, err
	}
	if val == nil {
		return nil, ErrNotFoundInDb
	}
	return val, nil
}

//Set set
func (db *BoltDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, value)
	})
	if err != nil {
		boltlog.Error("Set", "error", err)
	}
	return err
}

//Delete delete
func (db *BoltDB) Delete(key []byte) error {
	err := db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(key)
	})
	if err != nil {
		boltlog.Error("Delete", "error", err)
	}
	return err
}

//Close close
func (db *BoltDB) Close() {
	if err := db.db.Close(); err != nil {
		boltlog.Error("Close", "error", err)
	}
}

//List 列表
func (db *BoltDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	var values [][]byte
	err := db.db.View(func(tx *bolt.Tx) error {
		it := &boltIt{c: tx.Bucket(boltBucket).Cursor(), prefix: prefix}
		values = listIterator(it, key, count, direction)
		return nil
	})
	if err != nil {
		boltlog.Error("List", "error", err)
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFoundInDb
	}
	return values, nil
}

// boltIt 把 cursor 限制在 prefix 范围内
type boltIt struct {
	c      *bolt.Cursor
	prefix []byte
	k, v   []byte
}

func (it *boltIt) set(k, v []byte) bool {
	if k != nil && !bytes.HasPrefix(k, it.prefix) {
		k, v = nil, nil
	}
	it.k, it.v = k, v
	return k != nil
}

func (it *boltIt) First() bool {
	return it.set(it.c.Seek(it.prefix))
}

func (it *boltIt) Last() bool {
	end := prefixEnd(it.prefix)
	if end == nil {
		return it.set(it.c.Last())
	}
	k, _ := it.c.Seek(end)
	if k == nil {
		return it.set(it.c.Last())
	}
	return it.set(it.c.Prev())
}

func (it *boltIt) Seek(key []byte) bool {
	return it.set(it.c.Seek(key))
}

func (it *boltIt) Next() bool {
	return it.set(it.c.Next())
}

func (it *boltIt) Prev() bool {
	return it.set(it.c.Prev())
}

func (it *boltIt) Key() []byte {
	return it.k
}

func (it *boltIt) Value() []byte {
	return it.v
}

//NewBatch 所有操作在 Write 时放入同一个 bbolt 事务
func (db *BoltDB) NewBatch(sync bool) Batch {
	return &boltBatch{db: db}
}

type boltBatch struct {
	db   *BoltDB
	ops  []batchOp
	size int
}

func (b *boltBatch) Set(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), value: CopyBytes(value)})
	b.size += len(value)
}

func (b *boltBatch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), del: true})
	b.size++
}

func (b *boltBatch) Write() error {
	err := b.db.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		for _, op := range b.ops {
			var err error
			if op.del {
				err = bucket.Delete(op.key)
			} else {
				err = bucket.Put(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		boltlog.Error("Write", "error", err)
	}
	return err
}

func (b *boltBatch) ValueSize() int {
	return b.size
}

func (b *boltBatch) Reset() {
	b.ops = nil
	b.size = 0
}
