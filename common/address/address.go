// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 地址计算: 公钥地址以及由命名空间和种子派生的执行地址
package address

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/33cn/raffle/common"
	"github.com/decred/base58"
	lru "github.com/hashicorp/golang-lru"
)

var addrSeed = []byte("address seed bytes for public key")
var addressCache *lru.Cache
var checkAddressCache *lru.Cache

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

//DerivedVersion 派生地址的版本号, 没有私钥, 不能作为交易的发起方
const DerivedVersion byte = 2

// ErrCheckChecksum checksum of a base58 address does not match
var ErrCheckChecksum = errors.New("Address Checksum error")

func init() {
	addressCache, _ = lru.New(10240)
	checkAddressCache, _ = lru.New(10240)
}

//ExecPubKey 计算公钥
func ExecPubKey(name string) []byte {
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	var bname [200]byte
	buf := append(bname[:0], addrSeed...)
	buf = append(buf, []byte(name)...)
	hash := common.Sha2Sum(buf)
	return hash[:]
}

//ExecAddress 计算量有点大，做一次cache
func ExecAddress(name string) string {
	if value, ok := addressCache.Get(name); ok {
		return value.(string)
	}
	addr := PubKeyToAddress(ExecPubKey(name))
	addrstr := addr.String()
	addressCache.Add(name, addrstr)
	return addrstr
}

// DeriveAddress address owned by an executor namespace, seeded by arbitrary bytes.
// The same (namespace, seed) pair always yields the same address and no registry is kept.
func DeriveAddress(namespace string, seed []byte) string {
	if len(namespace) > MaxExecNameLength {
		panic("namespace too long")
	}
	key := namespace + ":" + hex.EncodeToString(seed)
	if value, ok := addressCache.Get(key); ok {
		return value.(string)
	}
	buf := make([]byte, 0, len(addrSeed)+len(namespace)+1+len(seed))
	buf = append(buf, addrSeed...)
	buf = append(buf, []byte(namespace)...)
	buf = append(buf, ':')
	buf = append(buf, seed...)
	hash := common.Sha2Sum(buf)
	a := PubKeyToAddress(hash[:])
	a.Version = DerivedVersion
	addrstr := a.String()
	addressCache.Add(key, addrstr)
	return addrstr
}

//IsDerivedAddress 是否是 DeriveAddress 生成的地址
func IsDerivedAddress(addr string) bool {
	a, err := NewAddrFromString(addr)
	if err != nil {
		return false
	}
	return a.Version == DerivedVersion
}

//PubKeyToAddress 公钥转为地址
func PubKeyToAddress(in []byte) *Address {
	a := new(Address)
	a.Pubkey = make([]byte, len(in))
	copy(a.Pubkey[:], in[:])
	a.Version = 0
	a.Hash160 = common.Rimp160AfterSha256(in)
	return a
}

//CheckAddress 检查地址
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	_, e = NewAddrFromString(addr)
	if e != nil {
		checkAddressCache.Add(addr, e)
		return e
	}
	checkAddressCache.Add(addr, nil)
	return nil
}

//NewAddrFromString new 地址
func NewAddrFromString(hs string) (a *Address, e error) {
	dec := base58.Decode(hs)
	if len(dec) == 0 {
		e = errors.New("Cannot decode b58 string '" + hs + "'")
		return
	}
	if len(dec) != 25 {
		e = errors.New("Address length error " + hex.EncodeToString(dec))
		return
	}
	sh := common.Sha2Sum(dec[0:21])
	if !bytes.Equal(sh[:4], dec[21:25]) {
		e = ErrCheckChecksum
		return
	}
	a = new(Address)
	a.Version = dec[0]
	copy(a.Hash160[:], dec[1:21])
	a.Checksum = make([]byte, 4)
	copy(a.Checksum, dec[21:25])
	a.Enc58str = hs
	return
}

//Address 地址
type Address struct {
	Version  byte
	Hash160  [20]byte
	Checksum []byte
	Pubkey   []byte
	Enc58str string
}

func (a *Address) String() string {
	if a.Enc58str == "" {
		var ad [25]byte
		ad[0] = a.Version
		copy(ad[1:21], a.Hash160[:])
		if a.Checksum == nil {
			sh := common.Sha2Sum(ad[0:21])
			a.Checksum = make([]byte, 4)
			copy(a.Checksum, sh[:4])
		}
		copy(ad[21:25], a.Checksum[:])
		a.Enc58str = base58.Encode(ad[:])
	}
	return a.Enc58str
}
