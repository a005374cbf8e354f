package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validation(t *testing.T) {
	shopID := uuid.New()

	_, err := New(uuid.Nil, "guid-1", "SKU1", "Shirt")
	assert.Error(t, err)

	_, err = New(shopID, "", "SKU1", "Shirt")
	assert.Error(t, err)

	_, err = New(shopID, "guid-1", "SKU1", "")
	assert.Error(t, err)

	p, err := New(shopID, "guid-1", "SKU1", "Shirt")
	require.NoError(t, err)
	assert.True(t, p.BelongsTo(shopID))
	assert.Nil(t, p.DefaultCategoryID)
}

func TestProduct_DefaultCategoryLifecycle(t *testing.T) {
	p, err := New(uuid.New(), "guid-1", "SKU1", "Shirt")
	require.NoError(t, err)

	require.Error(t, p.AssignDefaultCategory(uuid.Nil))

	categoryID := uuid.New()
	require.NoError(t, p.AssignDefaultCategory(categoryID))
	require.NotNil(t, p.DefaultCategoryID)
	assert.Equal(t, categoryID, *p.DefaultCategoryID)

	p.ClearDefaultCategory()
	assert.Nil(t, p.DefaultCategoryID)
}

func TestShopOverlay_DefaultNodeLifecycle(t *testing.T) {
	_, err := NewShopOverlay(uuid.Nil, uuid.New())
	assert.Error(t, err)

	o, err := NewShopOverlay(uuid.New(), uuid.New())
	require.NoError(t, err)

	require.Error(t, o.AssignDefaultNode(uuid.Nil))

	nodeID := uuid.New()
	require.NoError(t, o.AssignDefaultNode(nodeID))
	assert.Equal(t, nodeID, *o.DefaultNodeID)

	o.ClearDefaultNode()
	assert.Nil(t, o.DefaultNodeID)
}
