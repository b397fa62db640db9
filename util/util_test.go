// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/33cn/raffle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetDatadir(t *testing.T) {
	cfg, _, err := types.InitCfgString("")
	require.NoError(t, err)
	logFile := cfg.Log.LogFile
	dbPath := cfg.Store.DbPath

	datadir, err := ResetDatadir(cfg, "/data/raffle")
	require.NoError(t, err)
	assert.Equal(t, "/data/raffle", datadir)
	assert.Equal(t, filepath.Join("/data/raffle", dbPath), cfg.Store.DbPath)
	if logFile != "" {
		assert.Equal(t, filepath.Join("/data/raffle", logFile), cfg.Log.LogFile)
	}

	cfg, _, err = types.InitCfgString("")
	require.NoError(t, err)
	datadir, err = ResetDatadir(cfg, "$TEMP/raffle")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(datadir, "raffle"))
	assert.True(t, strings.HasPrefix(cfg.Store.DbPath, datadir))
}

func TestCreateTestDB(t *testing.T) {
	dir, db := CreateTestDB()
	require.NoError(t, db.Set([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	CloseTestDB(dir, db)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
