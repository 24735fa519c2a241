package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuService(t *testing.T) {
	menu, err := NewMenuService()
	require.NoError(t, err)

	items := menu.Items()
	require.Len(t, items, 18)
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].ID, items[i].ID)
	}

	pizza, ok := menu.Item(1)
	require.True(t, ok)
	assert.Equal(t, "Margherita Pizza", pizza.Name)
	assert.Equal(t, "1500.00LKR", pizza.Price)

	_, ok = menu.Item(999)
	assert.False(t, ok)
}

func TestMenuItemsReturnsCopy(t *testing.T) {
	menu, err := NewMenuService()
	require.NoError(t, err)

	items := menu.Items()
	items[0].Name = "changed"

	first, _ := menu.Item(items[0].ID)
	assert.NotEqual(t, "changed", first.Name)
	assert.NotEqual(t, "changed", menu.Items()[0].Name)
}

func TestLoadMenuRejectsBadCatalogs(t *testing.T) {
	tests := map[string]string{
		"duplicate id": "- {id: 1, name: A, price: '10'}\n- {id: 1, name: B, price: '20'}\n",
		"missing name": "- {id: 1, price: '10'}\n",
		"bad price":    "- {id: 1, name: A, price: 'free'}\n",
		"not yaml":     "{{",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadMenu([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMenuSortsByID(t *testing.T) {
	menu, err := LoadMenu([]byte("- {id: 3, name: C, price: '$3'}\n- {id: 1, name: A, price: '1,000 LKR'}\n"))
	require.NoError(t, err)

	items := menu.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
}
