package piggybank

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// test height - uninitialized
	val, ok := GetHeight(ctx)
	assert.Equal(t, int64(0), val)
	assert.False(t, ok)
	// set
	ctx = WithHeight(ctx, 7)
	val, ok = GetHeight(ctx)
	assert.Equal(t, int64(7), val)
	assert.True(t, ok)
	// no reset
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	// changing the info, should modify the logger, but not the height
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	val, _ = GetHeight(ctx)
	assert.Equal(t, int64(7), val)

	// chain id MUST be set exactly once
	assert.Equal(t, "", GetChainID(ctx))
	ctx2 = WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", GetChainID(ctx2))
	assert.Panics(t, func() { WithChainID(ctx2, "my-chain") })
	assert.Panics(t, func() { WithChainID(ctx, "no") })
}

func TestChainID(t *testing.T) {
	cases := map[string]struct {
		chainID string
		valid   bool
	}{
		"empty":          {chainID: "", valid: false},
		"too short":      {chainID: "foo", valid: false},
		"letters":        {chainID: "special", valid: true},
		"mixed":          {chainID: "wish-YOU-88", valid: true},
		"invalid chars":  {chainID: "invalid;;chars", valid: false},
		"too long":       {chainID: "this-chain-id-is-way-too-long", valid: false},
		"underscore ok":  {chainID: "piggy_bank", valid: true},
		"twenty letters": {chainID: "abcdefghijklmnopqrst", valid: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidChainID(tc.chainID))
		})
	}
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()

	_, err := BlockTime(bg)
	assert.Error(t, err)
	_, err = BlockTime(WithBlockTime(bg, time.Time{}))
	assert.Error(t, err)
	assert.Panics(t, func() { IsExpired(bg, 1) })

	now := time.Unix(1600000000, 0)
	ctx := WithBlockTime(bg, now)
	got, err := BlockNow(ctx)
	assert.NoError(t, err)
	assert.Equal(t, UnixTime(1600000000), got)

	cases := map[string]struct {
		when      UnixTime
		expired   bool
		inFuture  bool
		inThePast bool
	}{
		"one second ago": {when: 1599999999, expired: true, inThePast: true},
		"exactly now":    {when: 1600000000, expired: true},
		"one second on":  {when: 1600000001, inFuture: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.expired, IsExpired(ctx, tc.when))
			assert.Equal(t, tc.inFuture, InTheFuture(ctx, tc.when))
			assert.Equal(t, tc.inThePast, InThePast(ctx, tc.when))
		})
	}
}
