// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"net/http"
	"strings"

	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// HeaderAddr 调用者地址, 身份认证由前置的网关完成
const HeaderAddr = "X-Raffle-Addr"

// ErrTooManyRequests 访问频率超过限制
var ErrTooManyRequests = errors.New("ErrTooManyRequests")

// ErrorStatus 前置条件错误(ErrXxx)返回 400, 不存在返回 404, 其他 500
func ErrorStatus(err error) int {
	cause := errors.Cause(err)
	switch cause {
	case types.ErrNotFound:
		return http.StatusNotFound
	case types.ErrFaucetNotEnabled:
		return http.StatusForbidden
	case ErrTooManyRequests:
		return http.StatusTooManyRequests
	}
	if strings.HasPrefix(cause.Error(), "Err") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError {"error": "ErrXxx"}
func WriteError(c *gin.Context, err error) {
	status := ErrorStatus(err)
	cause := errors.Cause(err)
	msg := cause.Error()
	if status == http.StatusInternalServerError {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, &ReplyError{Error: msg})
}

// Caller 请求头中的调用者地址
func Caller(c *gin.Context) (string, error) {
	addr := c.GetHeader(HeaderAddr)
	if addr == "" {
		return "", errors.Wrap(types.ErrInvalidAddress, "missing "+HeaderAddr)
	}
	if err := address.CheckAddress(addr); err != nil {
		return "", errors.Wrap(types.ErrInvalidAddress, err.Error())
	}
	if address.IsDerivedAddress(addr) {
		return "", errors.Wrap(types.ErrInvalidAddress, "derived address can not send")
	}
	return addr, nil
}

// FormatAmount 按 Coin 换算, 保留 8 位小数
func FormatAmount(amount int64) string {
	return decimal.New(amount, 0).Div(decimal.New(types.Coin, 0)).StringFixed(8)
}

// ParseAmount "1.5" -> 150000000
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrap(types.ErrAmount, err.Error())
	}
	v := d.Mul(decimal.New(types.Coin, 0))
	if !v.Equal(v.Truncate(0)) {
		return 0, errors.Wrap(types.ErrAmount, "too many decimals")
	}
	amount := v.IntPart()
	if !types.CheckAmount(amount) {
		return 0, types.ErrAmount
	}
	return amount, nil
}

// NewAccount 账户的 json 结构
func NewAccount(acc *types.Account) *Account {
	return &Account{Addr: acc.Addr, Balance: acc.Balance, Frozen: acc.Frozen, Amount: FormatAmount(acc.Balance)}
}
