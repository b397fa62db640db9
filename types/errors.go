// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrNotFound          = errors.New("ErrNotFound")
	ErrNoBalance         = errors.New("ErrNoBalance")
	ErrAmount            = errors.New("ErrAmount")
	ErrInvalidAddress    = errors.New("ErrInvalidAddress")
	ErrSendSameToRecv    = errors.New("ErrSendSameToRecv")
	ErrDecode            = errors.New("ErrDecode")
	ErrUnknowDriver      = errors.New("ErrUnknowDriver")
	ErrActionNotSupport  = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport   = errors.New("ErrQueryNotSupport")
	ErrInvalidParam      = errors.New("ErrInvalidParam")
	ErrEmptyTx           = errors.New("ErrEmptyTx")
	ErrExecPanic         = errors.New("ErrExecPanic")
	ErrConfigNotFound    = errors.New("ErrConfigNotFound")
	ErrFaucetNotEnabled  = errors.New("ErrFaucetNotEnabled")
	ErrClockNotMonotonic = errors.New("ErrClockNotMonotonic")
)
