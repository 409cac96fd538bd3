package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quietdrive/rofs/fsinfo"
	"github.com/quietdrive/rofs/geometry"
)

func TestFAT32BackendRootInfo(t *testing.T) {
	geo := &geometry.Geometry{Format: geometry.FormatFAT32, RootFirstCluster: 2}
	b := NewFAT32Backend(geo, nil, nil)
	root := b.RootInfo()
	assert.Equal(t, fsinfo.RootID, root.ID)
	assert.True(t, root.IsDir)
	assert.Equal(t, uint32(2), root.FirstCluster)
}

func TestExFATBackendRootInfo(t *testing.T) {
	geo := &geometry.Geometry{Format: geometry.FormatExFAT, RootFirstCluster: 5}
	b := NewExFATBackend(geo, nil, nil)
	root := b.RootInfo()
	assert.Equal(t, fsinfo.RootID, root.ID)
	assert.True(t, root.IsDir)
	assert.Equal(t, uint32(5), root.FirstCluster)
}
