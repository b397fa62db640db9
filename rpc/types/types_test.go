// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrorStatus(types.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(errors.Wrap(types.ErrNotFound, "tx")))
	assert.Equal(t, http.StatusForbidden, ErrorStatus(types.ErrFaucetNotEnabled))
	assert.Equal(t, http.StatusTooManyRequests, ErrorStatus(ErrTooManyRequests))
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(errors.Wrap(types.ErrInvalidParam, "count")))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(errors.New("disk full")))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "0.11000000", FormatAmount(11000000))
	assert.Equal(t, "1.00000000", FormatAmount(types.Coin))
	assert.Equal(t, "0.00000000", FormatAmount(0))

	amount, err := ParseAmount("1.5")
	require.NoError(t, err)
	assert.Equal(t, int64(150000000), amount)

	_, err = ParseAmount("0.000000001")
	assert.Equal(t, types.ErrAmount, errors.Cause(err))
	_, err = ParseAmount("abc")
	assert.Equal(t, types.ErrAmount, errors.Cause(err))
	_, err = ParseAmount("-1")
	assert.Equal(t, types.ErrAmount, errors.Cause(err))
}

func TestNewReplyTx(t *testing.T) {
	transfer := &types.ReceiptAccountTransfer{
		Prev:    &types.Account{Addr: "a", Balance: 1},
		Current: &types.Account{Addr: "a", Balance: 2},
	}
	result := &executor.ExecResult{
		Hash: []byte{1, 2},
		Slot: 3,
		Receipt: &types.ReceiptData{Ty: types.ExecPack, Logs: []*types.ReceiptLog{
			{Ty: types.TyLogTransfer, Log: types.Encode(transfer)},
			{Ty: types.TyLogErr, Log: types.Encode(&types.ReceiptExecErr{Err: "ErrRoundExpired"})},
			{Ty: 12345, Log: []byte{0xff}},
		}},
	}
	reply, err := NewReplyTx(nil, result, errors.Wrap(errors.New("ErrRoundExpired"), "buy"))
	require.NoError(t, err)
	assert.Equal(t, "0x0102", reply.Hash)
	assert.Equal(t, int64(3), reply.Slot)
	assert.Equal(t, "ErrRoundExpired", reply.Error)
	require.Len(t, reply.Receipt.Logs, 3)
	assert.Equal(t, "ExecPack", reply.Receipt.TyName)
	assert.Equal(t, "LogTransfer", reply.Receipt.Logs[0].TyName)
	assert.Equal(t, "LogErr", reply.Receipt.Logs[1].TyName)
	assert.Equal(t, "unkownType", reply.Receipt.Logs[2].TyName)
	assert.Nil(t, reply.Receipt.Logs[2].Log)

	var decoded types.ReceiptAccountTransfer
	require.NoError(t, json.Unmarshal(reply.Receipt.Logs[0].Log, &decoded))
	assert.Equal(t, int64(2), decoded.Current.Balance)

	reply, err = NewReplyTx(nil, nil, types.ErrInvalidParam)
	require.NoError(t, err)
	assert.Equal(t, "ErrInvalidParam", reply.Error)
	assert.Nil(t, reply.Receipt)
}
