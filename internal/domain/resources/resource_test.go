package resources

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistValidateListsMissingFields(t *testing.T) {
	w := &Wishlist{Name: "Bday", Item: "  "}
	err := w.Validate()
	require.Error(t, err)

	var mf *MissingFieldsError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, "wishlist", mf.Kind)
	assert.Equal(t, []string{"item", "price", "location"}, mf.Fields)
}

func TestProfileValidate(t *testing.T) {
	assert.NoError(t, (&Profile{Name: "me", Dob: "1990-01-01"}).Validate())
	assert.Error(t, (&Profile{Name: "me"}).Validate())
}

func TestPatchLeavesAbsentFieldsUntouched(t *testing.T) {
	w := &Wishlist{Name: "Bday", Item: "Bike", Price: "100", Location: "Store"}
	item := "Kite"
	WishlistPatch{Item: &item}.ApplyTo(w)

	assert.Equal(t, "Bday", w.Name)
	assert.Equal(t, "Kite", w.Item)
	assert.Equal(t, "100", w.Price)
	assert.Equal(t, "Store", w.Location)
}

func TestProfilePatch(t *testing.T) {
	p := &Profile{Name: "old", Dob: "2000-01-01"}
	name := "new"
	ProfilePatch{Name: &name}.ApplyTo(p)
	assert.Equal(t, "new", p.Name)
	assert.Equal(t, "2000-01-01", p.Dob)
}
