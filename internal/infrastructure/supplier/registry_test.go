package supplier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared"
)

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry(Config{})
	require.NoError(t, err)
	assert.Equal(t, []order.Target{order.TargetABC, order.TargetBeacon, order.TargetSRS}, r.Targets())

	for _, target := range order.AllTargets() {
		c, err := r.Get(target)
		require.NoError(t, err)
		assert.Equal(t, target, c.Target())
	}
}

func TestNewDefaultRegistry_InvalidConfig(t *testing.T) {
	_, err := NewDefaultRegistry(Config{SRS: &SRSConfig{URL: "/submitOrder"}})
	assert.ErrorIs(t, err, ErrConfigMissingSiteID)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	abc, err := NewABCCompiler(nil)
	require.NoError(t, err)

	require.NoError(t, r.Register(abc))
	err = r.Register(abc)
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	_, err = r.Get(order.TargetSRS)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestRegistry_Compile(t *testing.T) {
	r, err := NewDefaultRegistry(Config{})
	require.NoError(t, err)

	t.Run("dispatches by target", func(t *testing.T) {
		req, err := r.Compile(minimalOrder(order.TargetSRS))
		require.NoError(t, err)
		assert.Equal(t, SRSSubmitURL, req.URL)
		assert.Contains(t, decodeObject(t, req.Body), "sourceSystem")
	})

	t.Run("unregistered target is a precondition failure", func(t *testing.T) {
		partial := NewRegistry()
		abc, err := NewABCCompiler(nil)
		require.NoError(t, err)
		require.NoError(t, partial.Register(abc))

		_, err = partial.Compile(minimalOrder(order.TargetBeacon))
		var pe *order.PreconditionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, order.TargetBeacon, pe.Target)
		assert.Equal(t, []string{`unsupported target "BEACON"`}, pe.Violations)
	})

	t.Run("preconditions checked before dispatch", func(t *testing.T) {
		o := minimalOrder(order.Target("ACME"))
		o.LineItems = nil
		_, err := r.Compile(o)
		var pe *order.PreconditionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, []string{"at least one line item required"}, pe.Violations)
	})
}
