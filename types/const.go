// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin    int64 = 1e8
	MaxCoin int64 = 1e17
)

//exec type
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// log type
const (
	TyLogErr      = 1
	TyLogTransfer = 3
	TyLogDeposit  = 5
)

//ExecNamePrefix 状态数据的 key 前缀
const (
	StatePrefix = "mavl-"
	LocalPrefix = "LODB-"
)

//CheckAmount 检查金额是否在合法范围内
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}

//CalcStateKey 生成合约状态数据 key: mavl-<exec>-<key>
func CalcStateKey(exec string, key string) []byte {
	return []byte(StatePrefix + exec + "-" + key)
}

//CalcLocalKey 生成合约本地数据 key: LODB-<exec>-<key>
func CalcLocalKey(exec string, key string) []byte {
	return []byte(LocalPrefix + exec + "-" + key)
}
