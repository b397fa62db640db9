// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

//LogInfo 日志类型以及名称
type LogInfo struct {
	Ty   reflect.Type
	Name string
}

//ExecutorType 执行器的类型信息: payload 结构以及 action/log 的名称表
type ExecutorType interface {
	GetName() string
	//GetPayload 新建一个空的 action, 用于解码交易
	GetPayload() ExecutorAction
	GetTypeMap() map[string]int32
	GetLogMap() map[int32]*LogInfo
	DecodePayload(tx *Transaction) (ExecutorAction, error)
	DecodePayloadValue(tx *Transaction) (string, reflect.Value, error)
	GetActionName(tx *Transaction) string
	DecodeReceiptLog(ty int32, data []byte) (interface{}, error)
}

//ExecTypeBase 实现 ExecutorType 中通用的部分, 具体执行器嵌入并调用 SetChild
type ExecTypeBase struct {
	child ExecutorType
}

//SetChild 设置具体的执行器类型
func (base *ExecTypeBase) SetChild(child ExecutorType) {
	base.child = child
}

//DecodePayload 解码交易中的 action
func (base *ExecTypeBase) DecodePayload(tx *Transaction) (ExecutorAction, error) {
	if tx == nil || len(tx.Payload) == 0 {
		return nil, ErrEmptyTx
	}
	payload := base.child.GetPayload()
	if err := Decode(tx.Payload, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

//DecodePayloadValue 解码 action, 返回 action 名称和具体的参数
func (base *ExecTypeBase) DecodePayloadValue(tx *Transaction) (string, reflect.Value, error) {
	action, err := base.DecodePayload(tx)
	if err != nil {
		return "", nilValue, err
	}
	name, ty, val := GetActionValue(action, base.child.GetTypeMap())
	if !val.IsValid() {
		return "", nilValue, errors.Wrapf(ErrActionNotSupport, "ty=%d", ty)
	}
	return name, val, nil
}

//GetActionName action 名称, 小写
func (base *ExecTypeBase) GetActionName(tx *Transaction) string {
	name, _, err := base.DecodePayloadValue(tx)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(name)
}

//DecodeReceiptLog 根据 log map 解码日志
func (base *ExecTypeBase) DecodeReceiptLog(ty int32, data []byte) (interface{}, error) {
	info, ok := base.child.GetLogMap()[ty]
	if !ok {
		return nil, ErrActionNotSupport
	}
	v := reflect.New(info.Ty).Interface()
	if err := Decode(data, v); err != nil {
		return nil, err
	}
	return v, nil
}
