// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterAndTimer(t *testing.T) {
	c := TxCounter("raffle", "buy", "ok")
	before := c.Count()
	c.Inc(1)
	assert.Equal(t, before+1, TxCounter("raffle", "buy", "ok").Count())

	timer := ExecTimer("raffle")
	timer.Update(time.Millisecond)
	assert.True(t, timer.Count() >= 1)

	Gauge("slot").Update(7)
	assert.Equal(t, int64(7), Gauge("slot").Value())

	all := Snapshot()
	_, ok := all["raffle.tx.raffle.buy.ok"]
	assert.True(t, ok)
}

func TestWriteJSON(t *testing.T) {
	TxCounter("raffle", "claim", "err").Inc(1)
	var buf bytes.Buffer
	WriteJSON(&buf)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Contains(t, data, "raffle.tx.raffle.claim.err")
}
