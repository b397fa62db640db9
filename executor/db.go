// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// StateDB 交易执行期间的缓存, Commit 时所有修改作为一个 batch 写入后端
// 状态数据(mavl-)和本地索引(LODB-)使用同一个后端, 保证一次交易的修改同时落盘
type StateDB struct {
	db      dbm.DB
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.DB) *StateDB {
	return &StateDB{db: db}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = make(map[string][]byte)
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 把事务中的修改写入后端, 失败时后端保持不变
func (s *StateDB) Commit() error {
	if !s.intx {
		return nil
	}
	defer s.resetTx()
	if len(s.txcache) == 0 {
		return nil
	}
	batch := s.db.NewBatch(true)
	for _, k := range s.sortedKeys() {
		v := s.txcache[k]
		if v == nil {
			batch.Delete([]byte(k))
		} else {
			batch.Set([]byte(k), v)
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit state")
	}
	return nil
}

func (s *StateDB) sortedKeys() []string {
	keys := make([]string, 0, len(s.txcache))
	for k := range s.txcache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx {
		if value, ok := s.txcache[skey]; ok {
			if value == nil {
				return nil, types.ErrNotFound
			}
			return value, nil
		}
	}
	value, err := s.db.Get(key)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set 只能在事务中调用; value 为 nil 表示删除
func (s *StateDB) Set(key []byte, value []byte) error {
	if !s.intx {
		return errors.New("state db set outside tx")
	}
	skey := string(key)
	s.keys = append(s.keys, skey)
	s.txcache[skey] = dbm.CopyBytes(value)
	return nil
}

// List 只查询已经提交的数据
func (s *StateDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	values, err := s.db.List(prefix, key, count, direction)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	return values, err
}

// GetSetKeys  get state db set keys
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}
