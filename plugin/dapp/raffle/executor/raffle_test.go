// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	host "github.com/33cn/raffle/executor"
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addrA = address.PubKeyToAddress([]byte("alice")).String()
	addrB = address.PubKeyToAddress([]byte("bob")).String()
	addrC = address.PubKeyToAddress([]byte("carol")).String()
	addrD = address.PubKeyToAddress([]byte("dave")).String()
)

const (
	poolShare     = 10000000
	operatorShare = 1000000
	activationFee = 10000000
	duration      = 60
)

type testClock struct {
	now int64
}

func (c *testClock) Now() int64 {
	return c.now
}

type testEnv struct {
	t     *testing.T
	exec  *host.Executor
	clock *testClock
	nonce int64
}

func newTestEnv(t *testing.T, sub string) *testEnv {
	require.NoError(t, Init(rty.RaffleX, []byte(sub)))
	db, err := dbm.NewGoMemDB("raffle", "", 0)
	require.NoError(t, err)
	clock := &testClock{now: 1000}
	exec, err := host.New(db, clock)
	require.NoError(t, err)
	env := &testEnv{t: t, exec: exec, clock: clock}
	for _, addr := range []string{addrA, addrB, addrC} {
		_, err := exec.Deposit(addr, 10*types.Coin)
		require.NoError(t, err)
	}
	return env
}

func (env *testEnv) send(from string, action *rty.RaffleAction) (*host.ExecResult, error) {
	env.nonce++
	return env.exec.ExecTx(rty.CreateTx(from, action, env.nonce))
}

func (env *testEnv) buy(from string, round uint64) error {
	_, err := env.send(from, rty.NewBuy(round, 1, ""))
	return errors.Cause(err)
}

func (env *testEnv) query(funcName string, param interface{}) (interface{}, error) {
	return env.exec.Query(rty.RaffleX, funcName, types.Encode(param))
}

func (env *testEnv) round(n uint64) *rty.Round {
	v, err := env.query(rty.FuncNameGetRound, &rty.ReqRound{RoundNumber: n})
	require.NoError(env.t, err)
	return v.(*rty.Round)
}

func (env *testEnv) position(n uint64, buyer string, start uint64) (*rty.EntryPosition, error) {
	v, err := env.query(rty.FuncNameGetPosition, &rty.PositionRef{RoundNumber: n, Buyer: buyer, StartIndex: start})
	if err != nil {
		return nil, err
	}
	return v.(*rty.EntryPosition), nil
}

func (env *testEnv) positions(n uint64, addr string) []*rty.EntryPosition {
	v, err := env.query(rty.FuncNameListPositions, &rty.ReqRoundPositions{RoundNumber: n, Addr: addr, Count: 100})
	require.NoError(env.t, err)
	return v.(*rty.ReplyPositions).Positions
}

func (env *testEnv) balance(addr string) int64 {
	return env.exec.Balance(addr).Balance
}

func (env *testEnv) collector() string {
	return getConfig().Collector()
}

// 三个人依次购买第一轮, 过期后开奖, 返回中奖者
func (env *testEnv) playRound1() (winner string, buyers []string) {
	buyers = []string{addrA, addrB, addrC}
	for _, addr := range buyers {
		require.NoError(env.t, env.buy(addr, 1))
		env.clock.now++
	}
	env.clock.now = 1000 + duration
	_, err := env.send(addrD, rty.NewFinalize(1))
	require.NoError(env.t, err)
	r := env.round(1)
	require.NotNil(env.t, r.WinningIndex)
	return buyers[*r.WinningIndex], buyers
}

func TestRaffleFullRound(t *testing.T) {
	env := newTestEnv(t, "")
	buyers := []string{addrA, addrB, addrC}
	for i, addr := range buyers {
		require.NoError(t, env.buy(addr, 1))
		pos, err := env.position(1, addr, uint64(i))
		require.NoError(t, err)
		assert.Equal(t, uint32(1), pos.Count)
		assert.False(t, pos.Claimed)
		env.clock.now++
	}
	r := env.round(1)
	assert.Equal(t, uint64(3), r.TotalEntries)
	assert.Equal(t, rty.RoundActive, r.Status)
	assert.Equal(t, int64(1000), r.StartTime)
	assert.Equal(t, int64(1000+duration), r.EndTime)
	assert.Nil(t, r.WinningIndex)
	assert.Equal(t, int64(3*poolShare), env.balance(vaultAddress(1)))
	assert.Equal(t, int64(3*operatorShare), env.balance(env.collector()))
	assert.Equal(t, 10*types.Coin-poolShare-operatorShare, env.balance(addrA))

	// 还没有过期
	env.clock.now = 1000 + duration - 1
	_, err := env.send(addrD, rty.NewFinalize(1))
	assert.Equal(t, rty.ErrRoundNotExpired, errors.Cause(err))

	env.clock.now = 1000 + duration
	result, err := env.send(addrD, rty.NewFinalize(1))
	require.NoError(t, err)
	r = env.round(1)
	assert.Equal(t, rty.RoundEnded, r.Status)
	require.NotNil(t, r.WinningIndex)
	assert.True(t, *r.WinningIndex < 3)
	assert.Equal(t, WinningIndex(1, result.Slot, 3), *r.WinningIndex)

	_, err = env.send(addrD, rty.NewFinalize(1))
	assert.Equal(t, rty.ErrRoundNotActive, errors.Cause(err))

	index := *r.WinningIndex
	winner := buyers[index]
	v, err := env.query(rty.FuncNameGetWinningPosition, &rty.ReqRound{RoundNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, winner, v.(*rty.ReplyWinner).Position.Buyer)
	assert.Equal(t, index, v.(*rty.ReplyWinner).Position.StartIndex)

	// 只有覆盖中奖号码的区间可以领奖
	for i, addr := range buyers {
		if uint64(i) == index {
			continue
		}
		_, err := env.send(addr, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: addr, StartIndex: uint64(i)}))
		assert.Equal(t, rty.ErrNotWinner, errors.Cause(err))
		// 别人的区间
		_, err = env.send(addr, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: winner, StartIndex: index}))
		assert.Equal(t, rty.ErrNotOwner, errors.Cause(err))
	}

	before := env.balance(winner)
	env.clock.now = 2000
	_, err = env.send(winner, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: winner, StartIndex: index}))
	require.NoError(t, err)
	assert.Equal(t, before+3*poolShare, env.balance(winner))
	assert.Equal(t, int64(0), env.balance(vaultAddress(1)))
	assert.Equal(t, rty.RoundClaimed, env.round(1).Status)
	pos, err := env.position(1, winner, index)
	require.NoError(t, err)
	assert.True(t, pos.Claimed)

	next := env.round(2)
	assert.Equal(t, rty.RoundActive, next.Status)
	assert.Equal(t, uint64(0), next.TotalEntries)
	assert.Equal(t, int64(2000), next.StartTime)
	assert.Equal(t, int64(2000+duration), next.EndTime)
	assert.Equal(t, int64(0), env.balance(vaultAddress(2)))

	v, err = env.query(rty.FuncNameGetLatestRound, &rty.ReqNil{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.(*rty.Round).RoundNumber)

	// 不能重复领奖
	_, err = env.send(winner, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: winner, StartIndex: index}))
	assert.Equal(t, rty.ErrRoundNotEnded, errors.Cause(err))
	assert.Equal(t, before+3*poolShare, env.balance(winner))
}

func TestRaffleFinalizeUnknownRound(t *testing.T) {
	env := newTestEnv(t, "")
	_, err := env.send(addrD, rty.NewFinalize(1))
	assert.Equal(t, rty.ErrRoundNotFound, errors.Cause(err))

	require.NoError(t, env.buy(addrA, 1))
	_, err = env.send(addrD, rty.NewFinalize(2))
	assert.Equal(t, rty.ErrRoundNotFound, errors.Cause(err))
	_, err = env.send(addrD, rty.NewFinalize(1))
	assert.Equal(t, rty.ErrRoundNotExpired, errors.Cause(err))
	_, err = env.query(rty.FuncNameGetRound, &rty.ReqRound{RoundNumber: 2})
	assert.Equal(t, rty.ErrRoundNotFound, errors.Cause(err))
}

func TestRaffleEmptyRoundExtends(t *testing.T) {
	env := newTestEnv(t, "")
	winner, _ := env.playRound1()
	env.clock.now = 3000
	r := env.round(1)
	_, err := env.send(winner, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: winner, StartIndex: *r.WinningIndex}))
	require.NoError(t, err)

	round2 := env.round(2)
	env.clock.now = round2.EndTime + 5
	_, err = env.send(addrD, rty.NewFinalize(2))
	require.NoError(t, err)
	extended := env.round(2)
	assert.Equal(t, rty.RoundActive, extended.Status)
	assert.Nil(t, extended.WinningIndex)
	assert.True(t, extended.EndTime > round2.EndTime)
	assert.Equal(t, env.clock.now+duration, extended.EndTime)

	// 延长后可以正常购买
	require.NoError(t, env.buy(addrB, 2))
	pos, err := env.position(2, addrB, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pos.StartIndex)
	assert.Equal(t, uint64(1), env.round(2).TotalEntries)
}

func TestRaffleBuyExpiredRound(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.buy(addrA, 1))
	before := env.balance(addrB)

	env.clock.now = 1000 + duration
	result, err := env.send(addrB, rty.NewBuy(1, 1, ""))
	assert.Equal(t, rty.ErrRoundExpired, errors.Cause(err))
	require.NotNil(t, result)
	assert.Equal(t, int32(types.ExecPack), result.Receipt.Ty)

	// 过期处理已经提交, 购买没有提交
	r := env.round(1)
	assert.Equal(t, rty.RoundEnded, r.Status)
	require.NotNil(t, r.WinningIndex)
	assert.Equal(t, uint64(0), *r.WinningIndex)
	assert.Equal(t, uint64(1), r.TotalEntries)
	assert.Equal(t, before, env.balance(addrB))
	assert.Equal(t, int64(poolShare), env.balance(vaultAddress(1)))

	// 已经结束的轮次不能购买, 下一轮可以
	assert.Equal(t, rty.ErrRoundExpired, env.buy(addrB, 1))
	require.NoError(t, env.buy(addrB, 2))
	assert.Equal(t, uint64(1), env.round(2).TotalEntries)
}

func TestRaffleBuyExpiredEmptyRound(t *testing.T) {
	env := newTestEnv(t, "")
	winner, _ := env.playRound1()
	r := env.round(1)
	_, err := env.send(winner, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: winner, StartIndex: *r.WinningIndex}))
	require.NoError(t, err)

	round2 := env.round(2)
	env.clock.now = round2.EndTime
	assert.Equal(t, rty.ErrRoundExpired, env.buy(addrA, 2))
	extended := env.round(2)
	assert.Equal(t, rty.RoundActive, extended.Status)
	assert.Equal(t, env.clock.now+duration, extended.EndTime)
	assert.Equal(t, uint64(0), extended.TotalEntries)

	require.NoError(t, env.buy(addrA, 2))
}

func TestRaffleCreateRoundRepairsPrevious(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.buy(addrA, 1))
	env.clock.now = 1100
	require.NoError(t, env.buy(addrB, 2))

	r1 := env.round(1)
	assert.Equal(t, rty.RoundEnded, r1.Status)
	require.NotNil(t, r1.WinningIndex)
	r2 := env.round(2)
	assert.Equal(t, rty.RoundActive, r2.Status)
	assert.Equal(t, int64(1100), r2.StartTime)
}

func TestRaffleBuyFailureRollsBackRepair(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.buy(addrA, 1))
	env.clock.now = 1100
	assert.Equal(t, rty.ErrInsufficientBalance, env.buy(addrD, 2))

	assert.Equal(t, rty.RoundActive, env.round(1).Status)
	_, err := env.query(rty.FuncNameGetRound, &rty.ReqRound{RoundNumber: 2})
	assert.Equal(t, rty.ErrRoundNotFound, err)
}

func TestRaffleSoldOut(t *testing.T) {
	env := newTestEnv(t, `{"maxEntriesPerRound":3}`)
	for _, addr := range []string{addrA, addrB, addrC} {
		require.NoError(t, env.buy(addr, 1))
	}
	before := env.balance(addrA)
	assert.Equal(t, rty.ErrRoundSoldOut, env.buy(addrA, 1))
	assert.Equal(t, uint64(3), env.round(1).TotalEntries)
	assert.Equal(t, before, env.balance(addrA))
	_, err := env.position(1, addrA, 3)
	assert.Equal(t, rty.ErrPositionNotFound, err)
	assert.Len(t, env.positions(1, addrA), 1)
}

func TestRaffleBuyValidation(t *testing.T) {
	env := newTestEnv(t, "")
	_, err := env.send(addrA, rty.NewBuy(1, 2, ""))
	assert.Equal(t, rty.ErrInvalidEntryCount, errors.Cause(err))
	_, err = env.send(addrA, rty.NewBuy(1, 0, ""))
	assert.Equal(t, rty.ErrInvalidEntryCount, errors.Cause(err))
	_, err = env.send(addrA, rty.NewBuy(1, 1, addrB))
	assert.Equal(t, rty.ErrInvalidFeeTarget, errors.Cause(err))
	assert.Equal(t, rty.ErrInvalidRoundNumber, env.buy(addrA, 0))

	assert.Equal(t, rty.ErrInsufficientBalance, env.buy(addrD, 1))
	_, err = env.query(rty.FuncNameGetRound, &rty.ReqRound{RoundNumber: 1})
	assert.Equal(t, rty.ErrRoundNotFound, err)

	_, err = env.send(addrA, rty.NewBuy(1, 1, env.collector()))
	require.NoError(t, err)
	// 手续费地址自己购买只支付奖池部分
	_, err = env.exec.Deposit(env.collector(), types.Coin)
	require.NoError(t, err)
	before := env.balance(env.collector())
	require.NoError(t, env.buy(env.collector(), 1))
	assert.Equal(t, before-poolShare, env.balance(env.collector()))
}

func TestRaffleRangesCoverEntries(t *testing.T) {
	env := newTestEnv(t, "")
	buyers := []string{addrA, addrB, addrC}
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		require.NoError(t, env.buy(buyers[rnd.Intn(len(buyers))], 1))
	}
	total := env.round(1).TotalEntries
	assert.Equal(t, uint64(20), total)

	var all []*rty.EntryPosition
	for _, addr := range buyers {
		for _, pos := range env.positions(1, addr) {
			assert.Equal(t, addr, pos.Buyer)
			all = append(all, pos)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartIndex < all[j].StartIndex })
	var next uint64
	for _, pos := range all {
		assert.Equal(t, next, pos.StartIndex)
		next = pos.StartIndex + uint64(pos.Count)
	}
	assert.Equal(t, total, next)

	// 分页
	first := env.positions(1, addrA)
	if len(first) > 1 {
		after := first[0].StartIndex
		v, err := env.query(rty.FuncNameListPositions, &rty.ReqRoundPositions{RoundNumber: 1, Addr: addrA, After: &after, Count: 1})
		require.NoError(t, err)
		page := v.(*rty.ReplyPositions).Positions
		require.Len(t, page, 1)
		assert.Equal(t, first[1].StartIndex, page[0].StartIndex)
	}

	// 中奖区间唯一
	env.clock.now = 1000 + duration
	_, err := env.send(addrD, rty.NewFinalize(1))
	require.NoError(t, err)
	index := *env.round(1).WinningIndex
	winners := 0
	for _, pos := range all {
		if pos.Contains(index) {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestRaffleClaimChecks(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.buy(addrA, 1))

	// 还没有结束
	_, err := env.send(addrA, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: addrA}))
	assert.Equal(t, rty.ErrRoundNotEnded, errors.Cause(err))
	_, err = env.send(addrA, rty.NewClaim(9, &rty.PositionRef{RoundNumber: 9, Buyer: addrA}))
	assert.Equal(t, rty.ErrRoundNotFound, errors.Cause(err))

	env.clock.now = 1000 + duration
	_, err = env.send(addrD, rty.NewFinalize(1))
	require.NoError(t, err)

	_, err = env.send(addrA, rty.NewClaim(1, nil))
	assert.Equal(t, rty.ErrPositionNotFound, errors.Cause(err))
	_, err = env.send(addrA, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 2, Buyer: addrA}))
	assert.Equal(t, rty.ErrRoundNumberMismatch, errors.Cause(err))
	_, err = env.send(addrA, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: addrA, StartIndex: 5}))
	assert.Equal(t, rty.ErrPositionNotFound, errors.Cause(err))

	_, err = env.send(addrA, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: addrA}))
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.balance(vaultAddress(1)))
}

func TestRaffleClaimedPositionRejected(t *testing.T) {
	require.NoError(t, Init(rty.RaffleX, nil))
	db, err := dbm.NewGoMemDB("raffle", "", 0)
	require.NoError(t, err)
	state := host.NewStateDB(db)
	state.Begin()

	index := uint64(0)
	round := NewRoundDB(1, 1000, duration)
	round.TotalEntries = 1
	round.WinningIndex = &index
	round.Status = rty.RoundEnded
	round.Save(state)
	pos := &PositionDB{}
	pos.RoundNumber = 1
	pos.Buyer = addrA
	pos.Count = 1
	pos.Claimed = true
	pos.Save(state)

	r := newRaffle().(*Raffle)
	r.SetStateDB(state)
	r.SetLocalDB(state)
	r.SetEnv(1, 2000)
	tx := rty.CreateTx(addrA, rty.NewClaim(1, pos.Ref()), 1)
	_, err = r.Exec(tx, 0)
	assert.Equal(t, rty.ErrAlreadyClaimed, errors.Cause(err))
}

func TestRaffleActivate(t *testing.T) {
	env := newTestEnv(t, `{"requireActivation":true}`)
	assert.Equal(t, rty.ErrUserNotActivated, env.buy(addrA, 1))

	_, err := env.send(addrD, rty.NewActivate(""))
	assert.Equal(t, rty.ErrInsufficientBalance, errors.Cause(err))
	_, err = env.send(addrA, rty.NewActivate(addrB))
	assert.Equal(t, rty.ErrInvalidFeeTarget, errors.Cause(err))

	_, err = env.send(addrA, rty.NewActivate(""))
	require.NoError(t, err)
	assert.Equal(t, 10*types.Coin-activationFee, env.balance(addrA))
	assert.Equal(t, int64(activationFee), env.balance(env.collector()))
	v, err := env.query(rty.FuncNameGetProfile, &rty.ReqAddr{Addr: addrA})
	require.NoError(t, err)
	assert.True(t, v.(*rty.UserProfile).Activated)
	assert.Equal(t, int64(1000), v.(*rty.UserProfile).ActivatedAt)

	_, err = env.send(addrA, rty.NewActivate(""))
	assert.Equal(t, rty.ErrAlreadyActivated, errors.Cause(err))
	require.NoError(t, env.buy(addrA, 1))
}

func TestRaffleNextVaultPrefunded(t *testing.T) {
	env := newTestEnv(t, "")
	winner, _ := env.playRound1()
	_, err := env.exec.Deposit(vaultAddress(2), 1)
	require.NoError(t, err)

	before := env.balance(winner)
	index := *env.round(1).WinningIndex
	_, err = env.send(winner, rty.NewClaim(1, &rty.PositionRef{RoundNumber: 1, Buyer: winner, StartIndex: index}))
	require.NoError(t, err)
	assert.Equal(t, before+3*poolShare, env.balance(winner))
	assert.Equal(t, rty.RoundClaimed, env.round(1).Status)

	r := env.round(2)
	assert.Equal(t, rty.RoundActive, r.Status)
	assert.Equal(t, uint64(0), r.TotalEntries)
	require.NoError(t, env.buy(addrA, 2))
	assert.Equal(t, int64(1+poolShare), env.balance(vaultAddress(2)))
}

func TestRaffleVaultCannotSend(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.buy(addrA, 1))
	require.NoError(t, env.buy(addrB, 1))
	vault := vaultAddress(1)
	assert.Equal(t, types.ErrInvalidAddress, env.buy(vault, 1))
	assert.Equal(t, int64(2*poolShare), env.balance(vault))
	assert.Empty(t, env.positions(1, vault))

	// 绕过宿主直接执行, 由执行器拒绝
	db, err := dbm.NewGoMemDB("raffle", "", 0)
	require.NoError(t, err)
	state := host.NewStateDB(db)
	state.Begin()
	r := newRaffle().(*Raffle)
	r.SetStateDB(state)
	r.SetLocalDB(state)
	r.SetEnv(100, 1001)
	_, err = r.Exec(rty.CreateTx(vault, rty.NewBuy(1, 1, ""), 1), 0)
	assert.Equal(t, rty.ErrInvalidCaller, errors.Cause(err))
	_, err = r.Exec(rty.CreateTx(env.collector(), rty.NewActivate(""), 2), 0)
	assert.Equal(t, rty.ErrInvalidCaller, errors.Cause(err))
}

func TestRaffleConcurrentCreate(t *testing.T) {
	env := newTestEnv(t, "")
	const n = 16
	buyers := make([]string, n)
	for i := range buyers {
		buyers[i] = address.PubKeyToAddress([]byte(fmt.Sprintf("buyer-%d", i))).String()
		_, err := env.exec.Deposit(buyers[i], types.Coin)
		require.NoError(t, err)
	}
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		creates int
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := env.exec.ExecTx(rty.CreateTx(buyers[i], rty.NewBuy(1, 1, ""), int64(i+1)))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			for _, l := range res.Receipt.Logs {
				if l.Ty == rty.TyLogRaffleRoundCreate {
					creates++
				}
			}
		}(i)
	}
	wg.Wait()
	require.Empty(t, errs)
	assert.Equal(t, 1, creates)
	assert.Equal(t, uint64(n), env.round(1).TotalEntries)
	assert.Equal(t, int64(n*poolShare), env.balance(vaultAddress(1)))

	seen := make([]bool, n)
	for _, addr := range buyers {
		ps := env.positions(1, addr)
		require.Len(t, ps, 1)
		for i := ps[0].StartIndex; i < ps[0].StartIndex+uint64(ps[0].Count); i++ {
			require.True(t, i < n)
			assert.False(t, seen[i])
			seen[i] = true
		}
	}
	for i := range seen {
		assert.True(t, seen[i], "index %d", i)
	}
}

func TestRaffleQueries(t *testing.T) {
	env := newTestEnv(t, "")
	_, err := env.query(rty.FuncNameGetLatestRound, &rty.ReqNil{})
	assert.Equal(t, rty.ErrRoundNotFound, err)

	v, err := env.query(rty.FuncNameGetProfile, &rty.ReqAddr{Addr: addrD})
	require.NoError(t, err)
	assert.False(t, v.(*rty.UserProfile).Activated)
	_, err = env.query(rty.FuncNameGetProfile, &rty.ReqAddr{})
	assert.Equal(t, types.ErrInvalidParam, err)

	v, err = env.query(rty.FuncNameGetConfig, &rty.ReqNil{})
	require.NoError(t, err)
	cfg := v.(*rty.RaffleConfig)
	assert.Equal(t, int64(poolShare), cfg.PoolShare)
	assert.Equal(t, env.collector(), cfg.FeeCollector)

	require.NoError(t, env.buy(addrA, 1))
	v, err = env.query(rty.FuncNameGetVault, &rty.ReqRound{RoundNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, vaultAddress(1), v.(*rty.ReplyVault).Addr)
	assert.Equal(t, int64(poolShare), v.(*rty.ReplyVault).Balance)

	_, err = env.query(rty.FuncNameGetWinningPosition, &rty.ReqRound{RoundNumber: 1})
	assert.Equal(t, rty.ErrNoWinningIndex, err)
	assert.Empty(t, env.positions(1, addrB))
}

func TestWinningIndex(t *testing.T) {
	for total := uint64(1); total < 50; total++ {
		index := WinningIndex(3, 42, total)
		assert.True(t, index < total)
		assert.Equal(t, index, WinningIndex(3, 42, total))
	}
	assert.Panics(t, func() { WinningIndex(1, 1, 0) })
}

func TestInitConfig(t *testing.T) {
	err := Init(rty.RaffleX, []byte(`{"roundDuration":0}`))
	assert.Equal(t, rty.ErrInvalidConfig, errors.Cause(err))
	assert.Error(t, Init(rty.RaffleX, []byte(`{`)))
	require.NoError(t, Init(rty.RaffleX, []byte(`{"roundDuration":5}`)))
	assert.Equal(t, int64(5), getConfig().RoundDuration)
	assert.Equal(t, rty.RaffleX, GetName())
}
