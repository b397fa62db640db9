// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rty "github.com/33cn/raffle/plugin/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

// Exec_Activate action
func (r *Raffle) Exec_Activate(payload *rty.RaffleActivate, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewAction(r, tx, index)
	return actiondb.Activate(payload)
}

// Exec_Buy action
func (r *Raffle) Exec_Buy(payload *rty.RaffleBuy, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewAction(r, tx, index)
	return actiondb.Buy(payload)
}

// Exec_Finalize action
func (r *Raffle) Exec_Finalize(payload *rty.RaffleFinalize, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewAction(r, tx, index)
	return actiondb.Finalize(payload)
}

// Exec_Claim action
func (r *Raffle) Exec_Claim(payload *rty.RaffleClaim, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewAction(r, tx, index)
	return actiondb.Claim(payload)
}
