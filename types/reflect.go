// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Is this an exported - upper case - name?
func isExported(name string) bool {
	rune, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(rune)
}

//ListMethod 列出所有导出的方法
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	return ListMethodByType(typ)
}

//ListMethodByType 列出类型所有导出的方法
func ListMethodByType(typ reflect.Type) map[string]reflect.Method {
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		mname := method.Name
		// Method must be exported.
		if method.PkgPath != "" || !isExported(mname) {
			continue
		}
		methods[mname] = method
	}
	return methods
}

//ExecutorAction action 的类型
type ExecutorAction interface {
	GetTy() int32
}

var nilValue = reflect.ValueOf(nil)

//GetActionValue 根据 action 的 Ty 取出对应名称的字段, 空的参数解码后可能为 nil, 这时返回零值
func GetActionValue(action interface{}, typemap map[string]int32) (string, int32, reflect.Value) {
	a, ok := action.(ExecutorAction)
	if !ok {
		return "", 0, nilValue
	}
	ty := a.GetTy()
	var name string
	for k, v := range typemap {
		if v == ty {
			name = k
			break
		}
	}
	if name == "" {
		return "", ty, nilValue
	}
	rcvr := reflect.ValueOf(action)
	if rcvr.Kind() != reflect.Ptr || rcvr.IsNil() {
		return "", ty, nilValue
	}
	field := rcvr.Elem().FieldByName(name)
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return "", ty, nilValue
	}
	if field.IsNil() {
		return name, ty, reflect.New(field.Type().Elem())
	}
	return name, ty, field
}

//IsOK 检查反射调用的返回值个数
func IsOK(list []reflect.Value, n int) bool {
	return len(list) == n
}
