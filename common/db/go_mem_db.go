// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"sort"
	"strings"
	"sync"
)

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB 内存数据库, 测试以及单机演示使用
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

//NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	// memdb 不需要创建文件
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

//Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return CopyBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

//Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.db[string(key)] = CopyBytes(value)
	return nil
}

//Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, string(key))
	return nil
}

//Close close
func (db *GoMemDB) Close() {
}

//List 列表
func (db *GoMemDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	var keys []string
	for k := range db.db {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	it := &goMemDBIt{keys: keys, db: db.db, index: -1}
	values := listIterator(it, key, count, direction)
	if len(values) == 0 {
		return nil, ErrNotFoundInDb
	}
	return values, nil
}

// goMemDBIt 对排好序的 key 快照进行迭代, 调用方持有读锁
type goMemDBIt struct {
	keys  []string
	db    map[string][]byte
	index int
}

func (it *goMemDBIt) valid() bool {
	return it.index >= 0 && it.index < len(it.keys)
}

func (it *goMemDBIt) First() bool {
	it.index = 0
	return it.valid()
}

func (it *goMemDBIt) Last() bool {
	it.index = len(it.keys) - 1
	return it.valid()
}

func (it *goMemDBIt) Seek(key []byte) bool {
	it.index = sort.Search(len(it.keys), func(i int) bool {
		return bytes.Compare([]byte(it.keys[i]), key) >= 0
	})
	return it.valid()
}

func (it *goMemDBIt) Next() bool {
	it.index++
	return it.valid()
}

func (it *goMemDBIt) Prev() bool {
	it.index--
	return it.valid()
}

func (it *goMemDBIt) Key() []byte {
	return []byte(it.keys[it.index])
}

func (it *goMemDBIt) Value() []byte {
	return it.db[it.keys[it.index]]
}

//NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type memBatch struct {
	db   *GoMemDB
	ops  []batchOp
	size int
}

func (b *memBatch) Set(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), value: CopyBytes(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: CopyBytes(key), del: true})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()
	for _, op := range b.ops {
		if op.del {
			delete(b.db.db, string(op.key))
		} else {
			b.db.db[string(op.key)] = op.value
		}
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.ops = nil
	b.size = 0
}
