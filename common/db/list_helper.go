// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
)

//const
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// seekIterator 前缀范围内的双向迭代器
type seekIterator interface {
	First() bool
	Last() bool
	Seek(key []byte) bool
	Next() bool
	Prev() bool
	Key() []byte
	Value() []byte
}

// listIterator key 为空时从头(ASC)或尾(DESC)开始; 否则返回严格大于(ASC)或严格小于(DESC) key 的记录
func listIterator(it seekIterator, key []byte, count, direction int32) (values [][]byte) {
	var ok bool
	if direction == ListASC {
		if len(key) == 0 {
			ok = it.First()
		} else {
			ok = it.Seek(key)
			if ok && bytes.Equal(it.Key(), key) {
				ok = it.Next()
			}
		}
	} else {
		if len(key) == 0 {
			ok = it.Last()
		} else if it.Seek(key) {
			ok = it.Prev()
		} else {
			ok = it.Last()
		}
	}
	for ok {
		values = append(values, CopyBytes(it.Value()))
		if count > 0 && int32(len(values)) >= count {
			break
		}
		if direction == ListASC {
			ok = it.Next()
		} else {
			ok = it.Prev()
		}
	}
	return values
}

// prefixEnd 最小的大于所有 prefix 开头 key 的值, nil 表示没有上界
func prefixEnd(prefix []byte) []byte {
	end := CopyBytes(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
