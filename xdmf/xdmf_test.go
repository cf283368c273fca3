/*
 * xdmf_test.go, part of dued.
 *
 * Copyright 2026 The dued authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package xdmf

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/dued"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(Te *testing.T) {
	d := Description{Rows: 3, Cols: 4, Times: []float64{0, 1.5e-9}, Variables: dued.DefaultVariables()}
	var buf bytes.Buffer
	require.NoError(Te, Write(&buf, "run42", d))
	out := buf.String()
	require.True(Te, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(Te, out, `<!DOCTYPE Xdmf SYSTEM "Xdmf.dtd" []>`)
	assert.Contains(Te, out, `xmlns:xi="http://www.w3.org/2003/XInclude"`)

	var doc document
	require.NoError(Te, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(Te, "2.1", doc.Version)
	assert.Equal(Te, "Temporal", doc.Domain.CollectionType)
	require.Len(Te, doc.Domain.Grids, 2)

	g := doc.Domain.Grids[1]
	assert.Equal(Te, "1.5e-09", g.Time.Value)
	assert.Equal(Te, "2DSMesh", g.Topology.TopologyType)
	assert.Equal(Te, "3 4", g.Topology.Dimensions)
	require.Len(Te, g.Geometry.Items, 3)
	assert.Equal(Te, "run42.h5:/Y/frame_0001", g.Geometry.Items[1].Path)
	require.Len(Te, g.Attributes, len(d.Variables))

	dens := g.Attributes[0]
	assert.Equal(Te, "dens", dens.Name)
	assert.Equal(Te, "Cell", dens.Center)
	assert.Equal(Te, "2 3", dens.Item.Dimensions)
	assert.Equal(Te, "run42.h5:/dens/frame_0001", dens.Item.Path)

	vel := g.Attributes[1]
	assert.Equal(Te, "Velocity", vel.Name)
	assert.Equal(Te, "Vector", vel.AttributeType)
	assert.Equal(Te, "Node", vel.Center)
	assert.Equal(Te, "3 4 2", vel.Item.Dimensions)
}

func TestWriteFile(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "run42.xdmf")
	d := Description{Rows: 2, Cols: 2, Times: []float64{0}, Variables: dued.DefaultVariables()[:1]}
	require.NoError(Te, WriteFile(name, "run42", d))
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Contains(Te, string(b), "run42.h5:/dens/frame_0000")

	bad := filepath.Join(dir, "bad.xdmf")
	require.Error(Te, WriteFile(bad, "bad", Description{Rows: 1, Cols: 5}))
	_, err = os.Stat(bad)
	assert.True(Te, os.IsNotExist(err))
}
