// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 节点和测试用到的工具函数
package util

import (
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"

	"github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var ulog = log.New("module", "util")

//ResetDatadir 重写datadir, 日志文件和数据库目录都放到 datadir 下
func ResetDatadir(cfg *types.Config, datadir string) (string, error) {
	// Check in case of paths like "/something/~/something/"
	if len(datadir) >= 2 && datadir[:2] == "~/" {
		usr, err := user.Current()
		if err != nil {
			return "", errors.Wrap(err, "current user")
		}
		datadir = filepath.Join(usr.HomeDir, datadir[2:])
	}
	if len(datadir) >= 6 && datadir[:6] == "$TEMP/" {
		dir, err := ioutil.TempDir("", "raffledatadir-")
		if err != nil {
			return "", errors.Wrap(err, "temp dir")
		}
		datadir = filepath.Join(dir, datadir[6:])
	}
	ulog.Info("current user data dir is ", "dir", datadir)
	if cfg.Log != nil && cfg.Log.LogFile != "" {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
	if cfg.Store != nil {
		cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	}
	return datadir, nil
}

//CreateTestDB 创建一个测试数据库
func CreateTestDB() (string, db.DB) {
	dir, err := ioutil.TempDir("", "goleveldb")
	if err != nil {
		panic(err)
	}
	leveldb, err := db.NewGoLevelDB("goleveldb", dir, 128)
	if err != nil {
		panic(err)
	}
	return dir, leveldb
}

//CloseTestDB 关闭并删除测试数据库
func CloseTestDB(dir string, dbm db.DB) {
	dbm.Close()
	err := os.RemoveAll(dir)
	if err != nil {
		ulog.Info("RemoveAll ", "dir", dir, "err", err)
	}
}
