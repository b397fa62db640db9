// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Round 一轮抽奖
type Round struct {
	RoundNumber  uint64  `json:"roundNumber"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	TotalEntries uint64  `json:"totalEntries"`
	WinningIndex *uint64 `json:"winningIndex,omitempty"`
	Status       int32   `json:"status"`
}

//HasWinningIndex 是否已经开奖
func (r *Round) HasWinningIndex() bool {
	return r != nil && r.WinningIndex != nil
}

//EntryPosition 一次购买得到的号码区间 [StartIndex, StartIndex+Count)
type EntryPosition struct {
	RoundNumber uint64 `json:"roundNumber"`
	Buyer       string `json:"buyer"`
	StartIndex  uint64 `json:"startIndex"`
	Count       uint32 `json:"count"`
	Claimed     bool   `json:"claimed"`
}

//Contains 号码是否在区间内
func (p *EntryPosition) Contains(index uint64) bool {
	return p.StartIndex <= index && index-p.StartIndex < uint64(p.Count)
}

//Ref 定位这个区间的引用
func (p *EntryPosition) Ref() *PositionRef {
	return &PositionRef{RoundNumber: p.RoundNumber, Buyer: p.Buyer, StartIndex: p.StartIndex}
}

//PositionRef 区间的 key: (round, buyer, start)
type PositionRef struct {
	RoundNumber uint64 `json:"roundNumber"`
	Buyer       string `json:"buyer"`
	StartIndex  uint64 `json:"startIndex"`
}

//UserProfile 账户激活记录
type UserProfile struct {
	Addr        string `json:"addr"`
	Activated   bool   `json:"activated"`
	ActivatedAt int64  `json:"activatedAt"`
}

//RaffleAction 交易的 payload
type RaffleAction struct {
	Ty       int32
	Activate *RaffleActivate
	Buy      *RaffleBuy
	Finalize *RaffleFinalize
	Claim    *RaffleClaim
}

//GetTy action type
func (a *RaffleAction) GetTy() int32 {
	if a == nil {
		return 0
	}
	return a.Ty
}

//RaffleActivate 激活, FeeTarget 为空表示配置的手续费地址
type RaffleActivate struct {
	FeeTarget string `json:"feeTarget,omitempty"`
}

//RaffleBuy 购买号码
type RaffleBuy struct {
	RoundNumber uint64 `json:"roundNumber"`
	EntryCount  uint32 `json:"entryCount"`
	FeeTarget   string `json:"feeTarget,omitempty"`
}

//RaffleFinalize 开奖
type RaffleFinalize struct {
	RoundNumber uint64 `json:"roundNumber"`
}

//RaffleClaim 领奖, Position 是调用者自己的区间
type RaffleClaim struct {
	RoundNumber uint64       `json:"roundNumber"`
	Position    *PositionRef `json:"position"`
}

//ReceiptRaffle 回执日志, 按日志类型填充不同的字段
type ReceiptRaffle struct {
	RoundNumber uint64         `json:"roundNumber"`
	Addr        string         `json:"addr,omitempty"`
	PrevStatus  int32          `json:"prevStatus,omitempty"`
	Round       *Round         `json:"round,omitempty"`
	Position    *EntryPosition `json:"position,omitempty"`
	Profile     *UserProfile   `json:"profile,omitempty"`
	Amount      int64          `json:"amount,omitempty"`
	Vault       string         `json:"vault,omitempty"`
}

//ReqNil 无参数
type ReqNil struct{}

//ReqRound 查询一轮
type ReqRound struct {
	RoundNumber uint64 `json:"roundNumber"`
}

//ReqAddr 查询地址
type ReqAddr struct {
	Addr string `json:"addr"`
}

//ReqRoundPositions 分页查询地址在一轮中的区间, StartIndex 之后的 Count 个
type ReqRoundPositions struct {
	RoundNumber uint64  `json:"roundNumber"`
	Addr        string  `json:"addr"`
	After       *uint64 `json:"after,omitempty"`
	Count       int32   `json:"count"`
}

//ReplyPositions 区间列表
type ReplyPositions struct {
	Positions []*EntryPosition `json:"positions"`
}

//ReplyVault 奖池
type ReplyVault struct {
	RoundNumber uint64 `json:"roundNumber"`
	Addr        string `json:"addr"`
	Balance     int64  `json:"balance"`
}

//ReplyWinner 中奖区间
type ReplyWinner struct {
	Round    *Round         `json:"round"`
	Position *EntryPosition `json:"position"`
}
