// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 数据库接口以及 memdb/leveldb/badger/bbolt 后端
package db

import (
	"errors"

	log "github.com/33cn/raffle/common/log"
	perr "github.com/pkg/errors"
)

var dlog = log.New("module", "db")

//ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

//ErrUnknownBackend 未注册的数据库后端
var ErrUnknownBackend = errors.New("ErrUnknownBackend")

//KV 状态数据库读写接口
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

//KVDB 带有列表查询的读写接口
type KVDB interface {
	KV
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
}

//DB 后端数据库
type DB interface {
	KVDB
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	Close()
}

//Batch 批量写入，Write 原子提交
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

//const
const (
	LevelDBBackendStr   = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr = "goleveldb"
	MemDBBackendStr     = "memdb"
	BadgerDBBackendStr  = "badger"
	BoltDBBackendStr    = "bbolt"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

//NewDB 按后端名称创建数据库
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	dbCreator, ok := backends[backend]
	if !ok {
		dlog.Error("NewDB", "backend", backend, "err", ErrUnknownBackend)
		return nil, perr.Wrap(ErrUnknownBackend, backend)
	}
	db, err := dbCreator(name, dir, cache)
	if err != nil {
		dlog.Error("NewDB", "backend", backend, "dir", dir, "err", err)
		return nil, perr.Wrapf(err, "open %s db %s", backend, name)
	}
	return db, nil
}

//CopyBytes 复制
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return copiedBytes
}

type batchOp struct {
	key   []byte
	value []byte
	del   bool
}
