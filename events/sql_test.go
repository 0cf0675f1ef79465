package events

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLSink(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "events.db")
	sink, err := OpenSQLSink("sqlite", dsn)
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	require.NoError(t, sink.Publish(ctx, nil))
	require.NoError(t, sink.Publish(ctx, emitted(10,
		&testEvent{Kind: "goal/created", Value: 1},
		&testEvent{Kind: "goal/contribution", Value: 2},
	)))
	require.NoError(t, sink.Publish(ctx, emitted(11,
		&testEvent{Kind: "goal/contribution", Value: 3},
	)))

	all, err := sink.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(10), all[0].Height)
	assert.Equal(t, 0, all[0].Position)
	assert.Equal(t, "goal/created", all[0].Kind)
	assert.Equal(t, `{"value":1}`, all[0].Payload)
	assert.Equal(t, int64(1500000010), all[0].BlockTime)
	assert.Equal(t, 1, all[1].Position)
	assert.Len(t, all[0].ID, 36)
	assert.NotEqual(t, all[0].ID, all[1].ID)

	contributions, err := sink.List(ctx, Filter{Kind: "goal/contribution"})
	require.NoError(t, err)
	require.Len(t, contributions, 2)
	assert.Equal(t, `{"value":3}`, contributions[1].Payload)

	recent, err := sink.List(ctx, Filter{FromHeight: 11})
	require.NoError(t, err)
	require.Len(t, recent, 1)

	limited, err := sink.List(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLSinkReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "events.db")
	sink, err := OpenSQLSink("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, sink.Publish(context.Background(), emitted(1, &testEvent{Kind: "token/mint"})))
	require.NoError(t, sink.Close())

	// Migrations already applied must not fail the second open.
	sink, err = OpenSQLSink("sqlite", dsn)
	require.NoError(t, err)
	defer sink.Close()

	all, err := sink.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := OpenSQLSink("mysql", "whatever")
	assert.Error(t, err)
}
