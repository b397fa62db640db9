// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sync"

	log "github.com/33cn/raffle/common/log"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/system/dapp"
)

var rlog = log.New("module", "execs.raffle")

var (
	driverName = rty.RaffleX
	regOnce    sync.Once
	cfgLock    sync.RWMutex
	raffleCfg  = rty.DefaultConfig()
)

// Init 解析 [exec.sub.raffle] 并注册执行器, 可以重复调用以更新配置
func Init(name string, sub []byte) error {
	cfg, err := rty.ParseConfig(sub)
	if err != nil {
		return err
	}
	setConfig(cfg)
	regOnce.Do(func() {
		driverName = name
		dapp.Register(name, newRaffle)
	})
	rlog.Info("raffle init", "name", name, "poolShare", cfg.PoolShare, "operatorShare", cfg.OperatorShare,
		"roundDuration", cfg.RoundDuration, "maxEntries", cfg.MaxEntriesPerRound, "collector", cfg.Collector())
	return nil
}

func setConfig(cfg *rty.RaffleConfig) {
	cfgLock.Lock()
	defer cfgLock.Unlock()
	raffleCfg = cfg
}

func getConfig() *rty.RaffleConfig {
	cfgLock.RLock()
	defer cfgLock.RUnlock()
	cfg := *raffleCfg
	return &cfg
}

// GetName 执行器名称
func GetName() string {
	return newRaffle().GetName()
}

// Raffle 执行器
type Raffle struct {
	dapp.DriverBase
	cfg *rty.RaffleConfig
}

func newRaffle() dapp.Driver {
	r := &Raffle{cfg: getConfig()}
	r.SetChild(r)
	r.SetExecutorType(rty.NewType())
	return r
}

// GetDriverName 驱动名称
func (r *Raffle) GetDriverName() string {
	return driverName
}
