/*
 * doc.go, part of dued.
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

/*
Package dued reads the gnuplot output of the DUED hydrodynamics code.

A DUED simulation folder contains, under out/gpl, one gzipped text file per
time step (frm0001.gpl.gz, frm0002.gpl.gz, ...). Each file holds the whole
2D structured grid: one line per grid point, one column per variable
(positions, velocities, density, temperatures, pressures, energies,
ionization...). The first line of the first file gives the grid dimensions.

	**Capabilities**

	Discovers the frames and sorts them by their numeric index.

	Infers the grid shape from the header of the first frame.

	Repairs the floats DUED writes without exponent marker (1.2-126).

	Parses the frames concurrently on an explicitly owned worker pool,
	keeping the order of the time steps.

	Assembles the frames into a steps x rows x cols x variables array,
	removes the ghost cells, and optionally swaps the axes (to compare
	with FLASH) and converts to cgs units.

The h5 and xdmf packages write the assembled data to an HDF5 container and
its XDMF description, readable by VisIt or ParaView.
*/
package dued
