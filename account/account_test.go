// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = "14ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
	addr2 = "24ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
	addr3 = "34ZTV2wHG3uPHnA5cBJmNxAxxvbzS7Z5mE"
)

func GenerAccDb() *DB {
	//构造账户数据库
	stroedb, _ := db.NewGoMemDB("gomemdb", "test", 128)
	return NewCoinsAccount(stroedb)
}

func (acc *DB) GenerAccData() {
	// 加入账户
	account := &types.Account{
		Balance: 1000 * 1e8,
		Addr:    addr1,
	}
	acc.SaveAccount(account)

	account.Balance = 900 * 1e8
	account.Addr = addr2
	acc.SaveAccount(account)
}

func TestNewAccountDB(t *testing.T) {
	_, err := NewAccountDB("co-ins", "bty", nil)
	assert.Equal(t, types.ErrInvalidParam, err)
	acc, err := NewAccountDB("token", "test", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("mavl-token-test-"+addr1), acc.AccountKey(addr1))
}

func TestCheckTransfer(t *testing.T) {
	accCoin := GenerAccDb()
	accCoin.GenerAccData()

	require.NoError(t, accCoin.CheckTransfer(addr1, addr2, 10*1e8))
	assert.Equal(t, types.ErrNoBalance, accCoin.CheckTransfer(addr3, addr1, 1))
	assert.Equal(t, types.ErrAmount, accCoin.CheckTransfer(addr1, addr2, 0))
	assert.Equal(t, types.ErrAmount, accCoin.CheckTransfer(addr1, addr2, -1))
	assert.Equal(t, types.ErrSendSameToRecv, accCoin.CheckTransfer(addr1, addr1, 1))
}

func TestTransfer(t *testing.T) {
	accCoin := GenerAccDb()
	accCoin.GenerAccData()

	receipt, err := accCoin.Transfer(addr1, addr2, 10*1e8)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	assert.Len(t, receipt.KV, 2)
	require.Len(t, receipt.Logs, 2)

	var log1 types.ReceiptAccountTransfer
	require.NoError(t, types.Decode(receipt.Logs[0].Log, &log1))
	assert.Equal(t, int64(1000*1e8), log1.Prev.Balance)
	assert.Equal(t, int64(990*1e8), log1.Current.Balance)

	assert.Equal(t, int64(990*1e8), accCoin.LoadAccount(addr1).Balance)
	assert.Equal(t, int64(910*1e8), accCoin.LoadAccount(addr2).Balance)

	// 新地址可以接收
	_, err = accCoin.Transfer(addr1, addr3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accCoin.LoadAccount(addr3).Balance)

	_, err = accCoin.Transfer(addr3, addr1, 2)
	assert.Equal(t, types.ErrNoBalance, err)
}

func TestDeposit(t *testing.T) {
	accCoin := GenerAccDb()
	receipt, err := accCoin.Deposit(addr3, 5*types.Coin)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, int32(types.TyLogDeposit), receipt.Logs[0].Ty)
	assert.Equal(t, 5*types.Coin, accCoin.LoadAccount(addr3).Balance)

	_, err = accCoin.Deposit(addr3, types.MaxCoin-1)
	assert.Equal(t, types.ErrAmount, err)
	_, err = accCoin.Deposit(addr3, 0)
	assert.Equal(t, types.ErrAmount, err)
}

func TestLoadAccounts(t *testing.T) {
	accCoin := GenerAccDb()
	accCoin.GenerAccData()
	accs := accCoin.LoadAccounts([]string{addr1, addr3})
	require.Len(t, accs, 2)
	assert.Equal(t, int64(1000*1e8), accs[0].Balance)
	assert.Equal(t, addr3, accs[1].Addr)
	assert.Equal(t, int64(0), accs[1].Balance)
}
