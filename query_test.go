package piggybank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopQuery struct{}

func (nopQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) { return nil, nil }

func TestQueryRouter(t *testing.T) {
	qr := NewQueryRouter()
	qr.RegisterAll(
		func(r QueryRouter) { r.Register("/locks", nopQuery{}) },
		func(r QueryRouter) {
			r.Register("/goals", nopQuery{})
			r.Register("/goals/progress", nopQuery{})
		},
	)

	assert.NotNil(t, qr.Handler("/goals/progress"))
	assert.Nil(t, qr.Handler("/goals/unknown"))
	assert.Equal(t, []string{"/goals", "/goals/progress", "/locks"}, qr.Paths())

	assert.Panics(t, func() { qr.Register("/locks", nopQuery{}) })
}
