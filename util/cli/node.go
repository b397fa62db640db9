// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cli RunNode 加载存储, 执行器和 rpc 模块, 组合成 raffle 节点

package cli

import (
	"os"
	"os/signal"
	"syscall"

	dbm "github.com/33cn/raffle/common/db"
	clog "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/metrics"
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/rpc"
	"github.com/33cn/raffle/types"
	"github.com/33cn/raffle/util"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// RunNode 运行节点直到收到退出信号
func RunNode(configPath, datadir string) error {
	var (
		cfg *types.Config
		sub *types.ConfigSubModule
		err error
	)
	if configPath == "" {
		cfg, sub, err = types.InitCfgString("")
	} else {
		cfg, sub, err = types.InitCfg(configPath)
	}
	if err != nil {
		return err
	}
	if datadir != "" {
		if _, err := util.ResetDatadir(cfg, datadir); err != nil {
			return err
		}
	}
	clog.SetFileLog(cfg.Log)
	metrics.StartMetrics(cfg.Metrics)
	log.Info("loading store", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		return errors.Wrap(err, "open store")
	}

	log.Info("loading execs module")
	exec, err := executor.New(db, nil)
	if err != nil {
		db.Close()
		return err
	}
	defer exec.Close()
	if err := pluginmgr.InitExec(sub.Exec); err != nil {
		return err
	}

	rpcapi := rpc.New(cfg.RPC, exec)
	addr, err := rpcapi.Listen()
	if err != nil {
		return err
	}
	log.Info(cfg.Title+" node started", "rpc", addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("begin close rpc module")
	rpcapi.Close()
	log.Info("begin close execs module")
	return nil
}
