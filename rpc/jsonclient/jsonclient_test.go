// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/raffle/buy":
			body, _ := ioutil.ReadAll(r.Body)
			var req map[string]interface{}
			json.Unmarshal(body, &req)
			if r.Header.Get(rpctypes.HeaderAddr) == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"ErrInvalidAddress"}`))
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(&rpctypes.ReplyTx{Hash: "0x01", Error: "ErrRoundExpired"})
		case "/v1/status":
			w.Write([]byte(`{"slot":7}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`oops`))
		}
	}))
	defer ts.Close()

	client := NewJSONClient(ts.URL + "/")
	var status struct {
		Slot int64 `json:"slot"`
	}
	require.NoError(t, client.Get("status", &status))
	assert.Equal(t, int64(7), status.Slot)

	var reply rpctypes.ReplyTx
	err := client.Post("raffle/buy", map[string]int{"roundNumber": 1}, &reply)
	require.Error(t, err)
	assert.Equal(t, "ErrInvalidAddress", err.Error())

	// 出错时仍然返回回执
	client.SetAddr("addr")
	err = client.Post("/raffle/buy", map[string]int{"roundNumber": 1}, &reply)
	require.Error(t, err)
	assert.Equal(t, "ErrRoundExpired", err.Error())
	assert.Equal(t, "0x01", reply.Hash)

	err = client.Get("other", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
