// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func strs(list [][]byte) []string {
	var out []string
	for _, v := range list {
		out = append(out, string(v))
	}
	return out
}

// 迭代测试
func testDBIterator(t *testing.T, db DB) {
	t.Log("test Set")
	for _, k := range []string{"aaaaaa/1", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "my", "my_", "zzzzzz/1"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}
	b, err := hex.DecodeString("ff")
	require.NoError(t, err)
	require.NoError(t, db.Set(b, []byte("0xff")))

	t.Log("test Get")
	v, err := db.Get([]byte("aaaaaa/1"))
	require.NoError(t, err)
	require.Equal(t, "aaaaaa/1", string(v))
	_, err = db.Get([]byte("not-exist"))
	require.Equal(t, ErrNotFoundInDb, err)

	t.Log("test List all")
	list, err := db.List(nil, nil, 0, ListASC)
	require.NoError(t, err)
	require.Equal(t, []string{"aaaaaa/1", "my", "my_", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "zzzzzz/1", "0xff"}, strs(list))

	t.Log("test List from first")
	list, err = db.List([]byte("my"), nil, 2, ListASC)
	require.NoError(t, err)
	require.Equal(t, []string{"my", "my_"}, strs(list))

	t.Log("test List from last")
	list, err = db.List([]byte("my"), nil, 100, ListDESC)
	require.NoError(t, err)
	require.Equal(t, []string{"my_key/4", "my_key/3", "my_key/2", "my_key/1", "my_", "my"}, strs(list))

	t.Log("test List after key")
	list, err = db.List([]byte("my"), []byte("my_key/3"), 100, ListASC)
	require.NoError(t, err)
	require.Equal(t, []string{"my_key/4"}, strs(list))

	t.Log("test List before key")
	list, err = db.List([]byte("my"), []byte("my_key/3"), 100, ListDESC)
	require.NoError(t, err)
	require.Equal(t, []string{"my_key/2", "my_key/1", "my_", "my"}, strs(list))

	t.Log("test List before missing key")
	list, err = db.List([]byte("my_key/"), []byte("my_key/25"), 1, ListDESC)
	require.NoError(t, err)
	require.Equal(t, []string{"my_key/2"}, strs(list))

	_, err = db.List([]byte("my_key/"), []byte("my_key/4"), 1, ListASC)
	require.Equal(t, ErrNotFoundInDb, err)

	t.Log("test Delete")
	require.NoError(t, db.Delete([]byte("my_key/4")))
	_, err = db.Get([]byte("my_key/4"))
	require.Equal(t, ErrNotFoundInDb, err)
}

// 边界测试
func testDBBoundary(t *testing.T, db DB) {
	for _, h := range []string{"ff", "ffff", "ffffff", "ffffffff"} {
		k, _ := hex.DecodeString(h)
		require.NoError(t, db.Set(k, []byte("0x"+h)))
	}
	prefix, _ := hex.DecodeString("ff")
	list, err := db.List(prefix, nil, 0, ListASC)
	require.NoError(t, err)
	require.Equal(t, []string{"0xff", "0xffff", "0xffffff", "0xffffffff"}, strs(list))
	list, err = db.List(prefix, nil, 0, ListDESC)
	require.NoError(t, err)
	require.Equal(t, []string{"0xffffffff", "0xffffff", "0xffff", "0xff"}, strs(list))
}

func testDBBatch(t *testing.T, db DB) {
	require.NoError(t, db.Set([]byte("k1"), []byte("v1")))
	batch := db.NewBatch(true)
	batch.Set([]byte("k2"), []byte("v2"))
	batch.Set([]byte("k3"), []byte("v3"))
	batch.Delete([]byte("k1"))
	require.Equal(t, 5, batch.ValueSize())

	_, err := db.Get([]byte("k2"))
	require.Equal(t, ErrNotFoundInDb, err)

	require.NoError(t, batch.Write())
	_, err = db.Get([]byte("k1"))
	require.Equal(t, ErrNotFoundInDb, err)
	v, err := db.Get([]byte("k3"))
	require.NoError(t, err)
	require.Equal(t, []byte("v3"), v)

	batch.Reset()
	require.Equal(t, 0, batch.ValueSize())
}

func testAllBackend(t *testing.T, backend string) {
	cases := []func(*testing.T, DB){testDBIterator, testDBBoundary, testDBBatch}
	for i, f := range cases {
		db, err := NewDB("test", backend, t.TempDir(), 16)
		require.NoError(t, err, "case %d", i)
		f(t, db)
		db.Close()
	}
}

func TestGoMemDB(t *testing.T) {
	testAllBackend(t, MemDBBackendStr)
}

func TestGoLevelDB(t *testing.T) {
	testAllBackend(t, GoLevelDBBackendStr)
}

func TestGoBadgerDB(t *testing.T) {
	testAllBackend(t, BadgerDBBackendStr)
}

func TestBoltDB(t *testing.T) {
	testAllBackend(t, BoltDBBackendStr)
}

func TestNewDBUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "rocksdb", t.TempDir(), 16)
	require.Error(t, err)
}

func TestPrefixEnd(t *testing.T) {
	require.Equal(t, []byte("my`"), prefixEnd([]byte("my_")))
	require.Equal(t, []byte{0x01}, prefixEnd([]byte{0x00, 0xff}))
	require.Nil(t, prefixEnd([]byte{0xff, 0xff}))
	require.Nil(t, prefixEnd(nil))
}
