// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 访问节点 http 接口的客户端
package jsonclient

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	addr   string
	client *http.Client
}

// NewJSONClient produce a json object, url 形如 http://localhost:8801
func NewJSONClient(url string) *JSONClient {
	return &JSONClient{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAddr 设置调用者地址, 通过 X-Raffle-Addr 传给节点
func (c *JSONClient) SetAddr(addr string) {
	c.addr = addr
}

// Get GET /v1/<path>
func (c *JSONClient) Get(path string, res interface{}) error {
	return c.do(http.MethodGet, path, nil, res)
}

// Post POST /v1/<path>, params 编码为 json
func (c *JSONClient) Post(path string, params, res interface{}) error {
	return c.do(http.MethodPost, path, params, res)
}

// do 节点返回错误时 res 仍然会被填充 (比如 ExecPack 的回执)
func (c *JSONClient) do(method, path string, params, res interface{}) error {
	var body []byte
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return errors.Wrap(err, "marshal params")
		}
		body = data
	}
	req, err := http.NewRequest(method, c.url+"/v1/"+strings.TrimLeft(path, "/"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.addr != "" {
		req.Header.Set(rpctypes.HeaderAddr, c.addr)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var rerr rpctypes.ReplyError
		if err := json.Unmarshal(data, &rerr); err != nil || rerr.Error == "" {
			return errors.Errorf("http status %d: %s", resp.StatusCode, string(data))
		}
		if res != nil {
			json.Unmarshal(data, res)
		}
		return errors.New(rerr.Error)
	}
	if res == nil {
		return nil
	}
	return json.Unmarshal(data, res)
}
