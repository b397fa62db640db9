// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// Action 一笔交易的执行环境
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     string
	blocktime    int64
	slot         int64
	execaddr     string
	cfg          *rty.RaffleConfig
}

// NewAction 生成 action
func NewAction(r *Raffle, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: r.GetCoinsAccount(),
		db:           r.GetStateDB(),
		txhash:       tx.Hash(),
		fromaddr:     tx.From,
		blocktime:    r.GetBlockTime(),
		slot:         r.GetSlot(),
		execaddr:     dapp.ExecAddress(string(tx.Execer)),
		cfg:          r.cfg,
	}
}

func (a *Action) checkFeeTarget(target string) error {
	if target != "" && target != a.cfg.Collector() {
		return errors.Wrapf(rty.ErrInvalidFeeTarget, "target %s", target)
	}
	return nil
}

// checkCaller 派生地址(奖池, 默认手续费地址)不能发起交易
func (a *Action) checkCaller() error {
	if address.IsDerivedAddress(a.fromaddr) {
		return errors.Wrapf(rty.ErrInvalidCaller, "derived address %s", a.fromaddr)
	}
	return nil
}

// pay 从调用者转账, 收款方是调用者自己时跳过 (手续费地址自己购买)
func (a *Action) pay(to string, amount int64) (*types.Receipt, error) {
	if amount == 0 || to == a.fromaddr {
		return nil, nil
	}
	receipt, err := a.coinsAccount.Transfer(a.fromaddr, to, amount)
	if err != nil {
		rlog.Error("pay", "from", a.fromaddr, "to", to, "amount", amount, "err", err)
		return nil, err
	}
	return receipt, nil
}

// Activate 一次性激活, 向手续费地址支付激活费
func (a *Action) Activate(payload *rty.RaffleActivate) (*types.Receipt, error) {
	if err := a.checkCaller(); err != nil {
		return nil, err
	}
	if err := a.checkFeeTarget(payload.FeeTarget); err != nil {
		return nil, err
	}
	profile, err := findProfile(a.db, a.fromaddr)
	if err != nil {
		return nil, err
	}
	if profile.Activated {
		return nil, rty.ErrAlreadyActivated
	}
	if a.coinsAccount.LoadAccount(a.fromaddr).Balance < a.cfg.ActivationFee {
		return nil, rty.ErrInsufficientBalance
	}
	receipt, err := a.pay(a.cfg.Collector(), a.cfg.ActivationFee)
	if err != nil {
		return nil, err
	}
	profile.Activated = true
	profile.ActivatedAt = a.blocktime
	kv := profile.Save(a.db)
	rlog.Info("activate", "addr", a.fromaddr, "fee", a.cfg.ActivationFee)
	p := profile.UserProfile
	log1 := &types.ReceiptLog{Ty: rty.TyLogRaffleActivate, Log: types.Encode(&rty.ReceiptRaffle{
		Addr:    a.fromaddr,
		Profile: &p,
		Amount:  a.cfg.ActivationFee,
	})}
	return types.AppendReceipt(receipt, &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: []*types.ReceiptLog{log1}}), nil
}

// Buy 购买号码. 区间记录先于计数器写入, 保证 [0, total_entries) 中的每个号码都有对应的区间
func (a *Action) Buy(payload *rty.RaffleBuy) (*types.Receipt, error) {
	if payload.EntryCount != 1 {
		return nil, rty.ErrInvalidEntryCount
	}
	if err := a.checkFeeTarget(payload.FeeTarget); err != nil {
		return nil, err
	}
	if err := a.checkCaller(); err != nil {
		return nil, err
	}
	if a.cfg.RequireActivation {
		profile, err := findProfile(a.db, a.fromaddr)
		if err != nil {
			return nil, err
		}
		if !profile.Activated {
			return nil, rty.ErrUserNotActivated
		}
	}
	round, receipt, err := a.getOrCreateRound(payload.RoundNumber)
	if err != nil {
		// 过期轮次的修复数据在 receipt 中
		return receipt, err
	}
	count := uint64(payload.EntryCount)
	total := round.TotalEntries + count
	if total < round.TotalEntries {
		return nil, rty.ErrMathOverflow
	}
	if total > a.cfg.MaxEntriesPerRound {
		return nil, rty.ErrRoundSoldOut
	}
	if a.coinsAccount.LoadAccount(a.fromaddr).Balance < a.cfg.EntryPrice() {
		return nil, rty.ErrInsufficientBalance
	}
	vault := vaultAddress(round.RoundNumber)
	r1, err := a.pay(vault, a.cfg.PoolShare)
	if err != nil {
		return nil, err
	}
	receipt = types.AppendReceipt(receipt, r1)
	r2, err := a.pay(a.cfg.Collector(), a.cfg.OperatorShare)
	if err != nil {
		return nil, err
	}
	receipt = types.AppendReceipt(receipt, r2)

	pos := &PositionDB{}
	pos.RoundNumber = round.RoundNumber
	pos.Buyer = a.fromaddr
	pos.StartIndex = round.TotalEntries
	pos.Count = payload.EntryCount
	if _, err := findPosition(a.db, pos.Ref()); err != rty.ErrPositionNotFound {
		if err == nil {
			err = rty.ErrPositionExists
		}
		return nil, err
	}
	kv := pos.Save(a.db)
	round.TotalEntries = total
	kv = append(kv, round.Save(a.db)...)

	position := pos.EntryPosition
	r := round.Round
	log := &types.ReceiptLog{Ty: rty.TyLogRaffleBuy, Log: types.Encode(&rty.ReceiptRaffle{
		RoundNumber: round.RoundNumber,
		Addr:        a.fromaddr,
		Round:       &r,
		Position:    &position,
		Amount:      a.cfg.EntryPrice(),
		Vault:       vault,
	})}
	rlog.Debug("buy", "round", round.RoundNumber, "buyer", a.fromaddr, "start", pos.StartIndex, "total", total)
	return types.AppendReceipt(receipt, &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: []*types.ReceiptLog{log}}), nil
}

// Finalize 任何人都可以调用, 只对已过期的 Active 轮次生效; 轮次不存在时返回 ErrRoundNotFound
func (a *Action) Finalize(payload *rty.RaffleFinalize) (*types.Receipt, error) {
	round, err := findRound(a.db, payload.RoundNumber)
	if err != nil {
		return nil, err
	}
	if round.Status != rty.RoundActive {
		return nil, rty.ErrRoundNotActive
	}
	if !round.Expired(a.blocktime) {
		return nil, rty.ErrRoundNotExpired
	}
	return a.expire(round), nil
}

// Claim 中奖区间的持有者领取奖池, 同时开启下一轮
func (a *Action) Claim(payload *rty.RaffleClaim) (*types.Receipt, error) {
	round, err := findRound(a.db, payload.RoundNumber)
	if err != nil {
		return nil, err
	}
	if err := a.checkCaller(); err != nil {
		return nil, err
	}
	if round.Status != rty.RoundEnded {
		return nil, rty.ErrRoundNotEnded
	}
	if !round.HasWinningIndex() {
		return nil, rty.ErrNoWinningIndex
	}
	if payload.Position == nil {
		return nil, rty.ErrPositionNotFound
	}
	if payload.Position.RoundNumber != round.RoundNumber {
		return nil, rty.ErrRoundNumberMismatch
	}
	pos, err := findPosition(a.db, payload.Position)
	if err != nil {
		return nil, err
	}
	if pos.RoundNumber != round.RoundNumber {
		return nil, rty.ErrRoundNumberMismatch
	}
	if pos.Buyer != a.fromaddr {
		return nil, rty.ErrNotOwner
	}
	if pos.Claimed {
		return nil, rty.ErrAlreadyClaimed
	}
	if !pos.Contains(*round.WinningIndex) {
		return nil, rty.ErrNotWinner
	}

	vault := vaultAddress(round.RoundNumber)
	amount := a.vaultBalance(round.RoundNumber)
	var receipt *types.Receipt
	if amount > 0 {
		receipt, err = a.coinsAccount.Transfer(vault, a.fromaddr, amount)
		if err != nil {
			rlog.Error("claim transfer", "round", round.RoundNumber, "vault", vault, "amount", amount, "err", err)
			return nil, err
		}
	}
	if left := a.vaultBalance(round.RoundNumber); left != 0 {
		return nil, errors.Wrapf(rty.ErrVaultMismatch, "vault %s left %d", vault, left)
	}

	pos.Claimed = true
	kv := pos.Save(a.db)
	prev := round.Status
	round.Status = rty.RoundClaimed
	kv = append(kv, round.Save(a.db)...)
	position := pos.EntryPosition
	r := round.Round
	log := &types.ReceiptLog{Ty: rty.TyLogRaffleClaim, Log: types.Encode(&rty.ReceiptRaffle{
		RoundNumber: round.RoundNumber,
		Addr:        a.fromaddr,
		PrevStatus:  prev,
		Round:       &r,
		Position:    &position,
		Amount:      amount,
		Vault:       vault,
	})}
	receipt = types.AppendReceipt(receipt, &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: []*types.ReceiptLog{log}})

	next := round.RoundNumber + 1
	if next == 0 {
		return nil, rty.ErrMathOverflow
	}
	_, r3, err := a.adoptOrCreateRound(next)
	if err != nil {
		return nil, err
	}
	rlog.Info("claim", "round", round.RoundNumber, "winner", a.fromaddr, "amount", amount, "next", next)
	return types.AppendReceipt(receipt, r3), nil
}
