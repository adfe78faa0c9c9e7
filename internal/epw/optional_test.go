package epw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		o := Some(20.6)
		v, ok := o.Get()
		assert.True(t, ok)
		assert.True(t, o.Valid())
		assert.Equal(t, 20.6, v)
		assert.Equal(t, 20.6, o.Or(0))
		assert.Equal(t, "20.6", o.String())
		assert.Equal(t, 20.6, o.Any())
	})

	t.Run("missing", func(t *testing.T) {
		o := None[int]()
		_, ok := o.Get()
		assert.False(t, ok)
		assert.Equal(t, -1, o.Or(-1))
		assert.Equal(t, "missing", o.String())
		assert.Nil(t, o.Any())
	})

	t.Run("zero value is missing", func(t *testing.T) {
		var o Optional[float64]
		assert.False(t, o.Valid())
	})

	t.Run("present zero is not missing", func(t *testing.T) {
		o := Some(0)
		assert.True(t, o.Valid())
		assert.Equal(t, 0, o.Or(5))
	})
}

func TestOptionalJSON(t *testing.T) {
	type row struct {
		Temp  Optional[float64] `json:"temp"`
		Cover Optional[int]     `json:"cover"`
	}

	data, err := json.Marshal(row{Temp: Some(-3.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"temp":-3.5,"cover":null}`, string(data))

	var got row
	require.NoError(t, json.Unmarshal([]byte(`{"temp":null,"cover":7}`), &got))
	assert.False(t, got.Temp.Valid())
	assert.Equal(t, Some(7), got.Cover)

	assert.Error(t, json.Unmarshal([]byte(`{"cover":"seven"}`), &got))
}
