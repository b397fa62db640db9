// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//RaffleX 执行器名称
const RaffleX = "raffle"

//raffle action
const (
	RaffleActionActivate = 1 + iota
	RaffleActionBuy
	RaffleActionFinalize
	RaffleActionClaim
)

//log for raffle
const (
	TyLogRaffleActivate    = 901
	TyLogRaffleRoundCreate = 902
	TyLogRaffleBuy         = 903
	TyLogRaffleExtend      = 904
	TyLogRaffleDraw        = 905
	TyLogRaffleClaim       = 906
)

//round status, 只能 Active -> Ended -> Claimed
const (
	RoundActive int32 = 1 + iota
	RoundEnded
	RoundClaimed
)

//派生地址的命名空间
const (
	VaultNamespace = "raffle-vault"
	FeeNamespace   = "raffle-fee"
)

//query func name
const (
	FuncNameGetRound           = "GetRound"
	FuncNameGetLatestRound     = "GetLatestRound"
	FuncNameGetPosition        = "GetPosition"
	FuncNameGetProfile         = "GetProfile"
	FuncNameGetVault           = "GetVault"
	FuncNameListPositions      = "ListPositions"
	FuncNameGetWinningPosition = "GetWinningPosition"
	FuncNameGetConfig          = "GetConfig"
)

//StatusName 状态名称
func StatusName(status int32) string {
	switch status {
	case RoundActive:
		return "active"
	case RoundEnded:
		return "ended"
	case RoundClaimed:
		return "claimed"
	}
	return "unknown"
}
