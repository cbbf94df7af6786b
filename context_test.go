package charity

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

type testEvent string

func (e testEvent) Kind() string { return string(e) }

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// caller - uninitialized
	assert.Nil(t, GetCaller(ctx))
	alice := NewAddress([]byte("alice"))
	ctx = WithCaller(ctx, alice)
	assert.Equal(t, alice, GetCaller(ctx))

	// act on behalf of another identity
	pool := NewCondition("invest", "pool", []byte("DAI")).Address()
	inner := WithCaller(ctx, pool)
	assert.Equal(t, pool, GetCaller(inner))
	assert.Equal(t, alice, GetCaller(ctx))
}

func TestEvents(t *testing.T) {
	// no buffer, events are dropped
	Emit(context.Background(), testEvent("lost"))

	var buf EventBuffer
	ctx := WithEventBuffer(context.Background(), &buf)
	Emit(ctx, testEvent("first"))
	Emit(WithCaller(ctx, NewAddress([]byte("bob"))), testEvent("second"))
	assert.Equal(t, []Event{testEvent("first"), testEvent("second")}, buf.Events())

	buf.Reset()
	assert.Empty(t, buf.Events())
}
