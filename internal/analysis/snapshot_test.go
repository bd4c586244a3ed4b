package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshotIsConsistent(t *testing.T) {
	view := viewOf(
		attended("p1", "F", 30, "A", "Monday", 0),
		missed("p2", "M", 45, "B", "Tuesday", 2),
		missed("p3", "F", 70, "A", "Friday", 4),
	)

	snap, err := BuildSnapshot(view)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Summary.TotalAppointments)
	assert.Equal(t, view.RowCount(), snap.Outcomes[0].Count+snap.Outcomes[1].Count,
		"outcome counts must sum to the view size")
	assert.Len(t, snap.Weekdays, 7)
	assert.Len(t, snap.Neighbourhoods, 2)
	assert.NotEmpty(t, snap.Ages)
}

func TestBuildSnapshotEmptyView(t *testing.T) {
	snap, err := BuildSnapshot(viewOf())
	require.NoError(t, err)

	assert.True(t, snap.Summary.Empty)
	assert.Len(t, snap.Outcomes, 2)
	assert.Len(t, snap.Weekdays, 7)
	assert.Empty(t, snap.Ages)
	assert.Empty(t, snap.Neighbourhoods)
}

func TestBuildSnapshotCapsNeighbourhoods(t *testing.T) {
	view := viewOf(
		missed("p01", "F", 30, "N01", "Monday", 0),
		missed("p02", "F", 30, "N02", "Monday", 0),
		missed("p03", "F", 30, "N03", "Monday", 0),
		missed("p04", "F", 30, "N04", "Monday", 0),
		missed("p05", "F", 30, "N05", "Monday", 0),
		missed("p06", "F", 30, "N06", "Monday", 0),
		missed("p07", "F", 30, "N07", "Monday", 0),
		missed("p08", "F", 30, "N08", "Monday", 0),
		missed("p09", "F", 30, "N09", "Monday", 0),
		missed("p10", "F", 30, "N10", "Monday", 0),
		missed("p11", "F", 30, "N11", "Monday", 0),
		missed("p12", "F", 30, "N12", "Monday", 0),
	)

	snap, err := BuildSnapshot(view)
	require.NoError(t, err)

	assert.Len(t, snap.Neighbourhoods, TopNeighbourhoodLimit)
}
