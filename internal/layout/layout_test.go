package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections_FixedOrder(t *testing.T) {
	got := Sections()
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"about", "experience", "education", "skills"}, ids)
	assert.Equal(t, "About Me", got[0].Label)

	got[0].Label = "changed"
	assert.Equal(t, "About Me", Sections()[0].Label)
}

func TestDrawer_Narrow(t *testing.T) {
	d := NewDrawer(ViewportNarrow)
	assert.Equal(t, DrawerCollapsed, d.State())
	assert.False(t, d.Visible())

	tests := []struct {
		event DrawerEvent
		want  DrawerState
	}{
		{EventToggle, DrawerExpanded},
		{EventToggle, DrawerCollapsed},
		{EventToggle, DrawerExpanded},
		{EventNavigate, DrawerCollapsed},
		{EventClose, DrawerCollapsed},
		{EventToggle, DrawerExpanded},
		{EventClose, DrawerCollapsed},
		{EventNavigate, DrawerCollapsed},
	}
	for i, tt := range tests {
		got, err := d.Handle(tt.event)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "step %d (%s)", i, tt.event)
	}
}

func TestDrawer_WideIsAlwaysVisible(t *testing.T) {
	d := NewDrawer(ViewportWide)
	for _, ev := range Events() {
		got, err := d.Handle(ev)
		require.NoError(t, err)
		assert.Equal(t, DrawerExpanded, got)
		assert.True(t, d.Visible())
	}
}

func TestDrawer_UnknownEvent(t *testing.T) {
	d := NewDrawer(ViewportNarrow)
	_, err := d.Handle("swipe")
	assert.Error(t, err)
	assert.Equal(t, DrawerCollapsed, d.State())
}

func TestDrawer_Resize(t *testing.T) {
	d := NewDrawer(ViewportNarrow)
	d.Resize(ViewportWide)
	assert.True(t, d.Visible())
	assert.Equal(t, ViewportWide, d.Viewport())

	d.Resize(ViewportNarrow)
	assert.Equal(t, DrawerCollapsed, d.State())
}

func TestTransitionsJSON(t *testing.T) {
	raw, err := TransitionsJSON()
	require.NoError(t, err)

	var table map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &table))
	assert.Equal(t, "expanded", table["collapsed"]["toggle"])
	assert.Equal(t, "collapsed", table["expanded"]["navigate"])
	assert.Equal(t, "collapsed", table["expanded"]["close"])
}
