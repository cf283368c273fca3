/*
 * xdmf.go, part of dued.
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

//Package xdmf writes the XDMF 2.1 description of a container written by package h5,
//so VisIt and ParaView can load it as a time series of structured 2D meshes.
package xdmf

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/rmera/dued"
	"github.com/rmera/dued/h5"
)

const doctype = `<!DOCTYPE Xdmf SYSTEM "Xdmf.dtd" []>` + "\n"

//Description is what the markup needs to know about a container.
type Description struct {
	//Rows and Cols are the dimensions of the node grid.
	Rows      int
	Cols      int
	Times     []float64
	Variables []dued.Variable
}

//Describe returns the Description of the container written for S with its own variables.
func Describe(S *dued.Sim) Description {
	_, rows, cols, _ := S.Data.Dims()
	return Description{Rows: rows, Cols: cols, Times: S.Time, Variables: S.Options.Variables}
}

type document struct {
	XMLName xml.Name   `xml:"Xdmf"`
	XI      string     `xml:"xmlns:xi,attr"`
	Version string     `xml:"Version,attr"`
	Domain  collection `xml:"Domain>Grid"`
}

type collection struct {
	CollectionType string `xml:"CollectionType,attr"`
	GridType       string `xml:"GridType,attr"`
	Grids          []grid `xml:"Grid"`
}

type grid struct {
	Name       string      `xml:"Name,attr"`
	GridType   string      `xml:"GridType,attr"`
	Time       timeValue   `xml:"Time"`
	Topology   topology    `xml:"Topology"`
	Geometry   geometry    `xml:"Geometry"`
	Attributes []attribute `xml:"Attribute"`
}

type timeValue struct {
	Value string `xml:"Value,attr"`
}

type topology struct {
	TopologyType string `xml:"TopologyType,attr"`
	Dimensions   string `xml:"Dimensions,attr"`
}

type geometry struct {
	GeometryType string     `xml:"GeometryType,attr"`
	Items        []dataItem `xml:"DataItem"`
}

type attribute struct {
	Name          string   `xml:"Name,attr"`
	AttributeType string   `xml:"AttributeType,attr"`
	Center        string   `xml:"Center,attr"`
	Item          dataItem `xml:"DataItem"`
}

type dataItem struct {
	NumberType string `xml:"NumberType,attr"`
	Precision  string `xml:"Precision,attr"`
	Dimensions string `xml:"Dimensions,attr"`
	Format     string `xml:"Format,attr"`
	Path       string `xml:",chardata"`
}

func item(dims, path string) dataItem {
	return dataItem{NumberType: "Float", Precision: "8", Dimensions: dims, Format: "HDF", Path: path}
}

//build returns the document for the container name.h5.
func build(name string, d Description) document {
	ref := func(key string, t int) string {
		return name + ".h5:" + h5.FramePath(key, t)
	}
	nodes := fmt.Sprintf("%d %d", d.Rows, d.Cols)
	cells := fmt.Sprintf("%d %d", d.Rows-1, d.Cols-1)
	doc := document{
		XI:      "http://www.w3.org/2003/XInclude",
		Version: "2.1",
		Domain:  collection{CollectionType: "Temporal", GridType: "Collection"},
	}
	for t, tv := range d.Times {
		g := grid{
			Name:     "Mesh",
			GridType: "Uniform",
			Time:     timeValue{strconv.FormatFloat(tv, 'g', -1, 64)},
			Topology: topology{TopologyType: "2DSMesh", Dimensions: nodes},
			Geometry: geometry{
				GeometryType: "X_Y_Z",
				Items:        []dataItem{item(nodes, ref("X", t)), item(nodes, ref("Y", t)), item(nodes, ref("Z", t))},
			},
		}
		for _, v := range d.Variables {
			a := attribute{Name: v.Name, AttributeType: "Scalar", Center: "Cell", Item: item(cells, ref(v.Key, t))}
			if v.Vector {
				a.AttributeType, a.Center = "Vector", "Node"
				a.Item.Dimensions = nodes + " 2"
			}
			g.Attributes = append(g.Attributes, a)
		}
		doc.Domain.Grids = append(doc.Domain.Grids, g)
	}
	return doc
}

//Write writes to w the description d of the container name.h5. The container
//is referenced by name, so it should be a path relative to where the
//description will be read from.
func Write(w io.Writer, name string, d Description) error {
	if d.Rows < 2 || d.Cols < 2 {
		return errors.Newf("xdmf: can't describe a %dx%d grid", d.Rows, d.Cols)
	}
	if _, err := io.WriteString(w, xml.Header+doctype); err != nil {
		return errors.Wrap(err, "xdmf: can't write header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(build(name, d)); err != nil {
		return errors.Wrap(err, "xdmf: can't encode description")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "xdmf: can't encode description")
	}
	_, err := io.WriteString(w, "\n")
	return err
}

//WriteFile writes the description d of name.h5 to filename. If anything fails,
//filename is removed.
func WriteFile(filename, name string, d Description) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "xdmf: can't create %s", filename)
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "xdmf: can't close %s", filename)
		}
		if err != nil {
			os.Remove(filename)
		}
	}()
	bw := bufio.NewWriter(f)
	if err = Write(bw, name, d); err != nil {
		return err
	}
	return bw.Flush()
}
