package geolocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

func TestStaticGeolocationProvider_Geocode(t *testing.T) {
	p := NewStaticGeolocationProvider()

	addr, err := p.Geocode(context.Background(), "near times square, new york")
	require.NoError(t, err)
	assert.Equal(t, "Times Square", addr.FormattedAddress)
	assert.Equal(t, 40.7580, addr.Coordinates.Latitude)

	addr, err = p.Geocode(context.Background(), "Brooklyn")
	require.NoError(t, err)
	assert.Equal(t, "Brooklyn", addr.FormattedAddress)
}

func TestStaticGeolocationProvider_Errors(t *testing.T) {
	p := NewStaticGeolocationProvider()

	_, err := p.Geocode(context.Background(), "  ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = p.Geocode(context.Background(), "Atlantis")
	assert.True(t, apperrors.IsNotFound(err))
}
