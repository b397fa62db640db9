// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrAlreadyActivated    = errors.New("ErrAlreadyActivated")
	ErrUserNotActivated    = errors.New("ErrUserNotActivated")
	ErrInvalidFeeTarget    = errors.New("ErrInvalidFeeTarget")
	ErrInvalidEntryCount   = errors.New("ErrInvalidEntryCount")
	ErrInsufficientBalance = errors.New("ErrInsufficientBalance")
	ErrRoundSoldOut        = errors.New("ErrRoundSoldOut")
	ErrRoundExpired        = errors.New("ErrRoundExpired")
	ErrRoundNotFound       = errors.New("ErrRoundNotFound")
	ErrRoundNotActive      = errors.New("ErrRoundNotActive")
	ErrRoundNotExpired     = errors.New("ErrRoundNotExpired")
	ErrRoundNotEnded       = errors.New("ErrRoundNotEnded")
	ErrNoWinningIndex      = errors.New("ErrNoWinningIndex")
	ErrPositionNotFound    = errors.New("ErrPositionNotFound")
	ErrRoundNumberMismatch = errors.New("ErrRoundNumberMismatch")
	ErrNotOwner            = errors.New("ErrNotOwner")
	ErrAlreadyClaimed      = errors.New("ErrAlreadyClaimed")
	ErrNotWinner           = errors.New("ErrNotWinner")
	ErrInvalidRoundNumber  = errors.New("ErrInvalidRoundNumber")
	ErrInvalidConfig       = errors.New("ErrInvalidConfig")
	ErrInvalidCaller       = errors.New("ErrInvalidCaller")

	// 以下错误表示状态不一致, 交易整体回滚
	ErrMathOverflow   = errors.New("ErrMathOverflow")
	ErrVaultMismatch  = errors.New("ErrVaultMismatch")
	ErrPositionExists = errors.New("ErrPositionExists")
)
