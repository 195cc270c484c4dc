package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectLocations_FiltraYOrdena(t *testing.T) {
	values := []interface{}{"Rak B2", "", "Rak A1", nil, int32(7), "Etalase Depan"}

	got := collectLocations(values)

	assert.Equal(t, []string{"Etalase Depan", "Rak A1", "Rak B2"}, got,
		"vacíos y no-strings fuera, el resto en orden alfabético")
}

func TestCollectLocations_SinUbicaciones(t *testing.T) {
	assert.Empty(t, collectLocations(nil))
	assert.Empty(t, collectLocations([]interface{}{"", nil}))
}
