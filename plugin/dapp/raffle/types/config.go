// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/raffle/common/address"
	"github.com/pkg/errors"
)

//RaffleConfig [exec.sub.raffle] 配置, 构造执行器时确定, 执行期间不变
type RaffleConfig struct {
	//每个号码进入奖池的金额
	PoolShare int64 `json:"poolShare"`
	//每个号码支付给手续费地址的金额
	OperatorShare int64 `json:"operatorShare"`
	ActivationFee int64 `json:"activationFee"`
	//单位秒
	RoundDuration      int64  `json:"roundDuration"`
	MaxEntriesPerRound uint64 `json:"maxEntriesPerRound"`
	FeeCollector       string `json:"feeCollector"`
	RequireActivation  bool   `json:"requireActivation"`
}

//DefaultConfig 和默认配置文件中的值一致
func DefaultConfig() *RaffleConfig {
	return &RaffleConfig{
		PoolShare:          10000000,
		OperatorShare:      1000000,
		ActivationFee:      10000000,
		RoundDuration:      60,
		MaxEntriesPerRound: 1000,
	}
}

//ParseConfig 解析子模块配置, 缺少的项使用默认值
func ParseConfig(sub []byte) (*RaffleConfig, error) {
	cfg := DefaultConfig()
	if len(sub) > 0 {
		if err := json.Unmarshal(sub, cfg); err != nil {
			return nil, errors.Wrap(err, "parse raffle config")
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Validate 检查配置
func (c *RaffleConfig) Validate() error {
	if c.PoolShare <= 0 || c.OperatorShare < 0 || c.ActivationFee < 0 {
		return errors.Wrap(ErrInvalidConfig, "fee")
	}
	if c.PoolShare+c.OperatorShare < c.PoolShare {
		return errors.Wrap(ErrInvalidConfig, "fee overflow")
	}
	if c.RoundDuration <= 0 {
		return errors.Wrap(ErrInvalidConfig, "roundDuration")
	}
	if c.MaxEntriesPerRound == 0 {
		return errors.Wrap(ErrInvalidConfig, "maxEntriesPerRound")
	}
	if c.FeeCollector != "" {
		if err := address.CheckAddress(c.FeeCollector); err != nil {
			return errors.Wrap(ErrInvalidConfig, "feeCollector: "+err.Error())
		}
	}
	return nil
}

//Collector 手续费地址, 没有配置时使用派生地址
func (c *RaffleConfig) Collector() string {
	if c.FeeCollector != "" {
		return c.FeeCollector
	}
	return address.DeriveAddress(FeeNamespace, []byte("collector"))
}

//EntryPrice 一个号码的总价
func (c *RaffleConfig) EntryPrice() int64 {
	return c.PoolShare + c.OperatorShare
}
