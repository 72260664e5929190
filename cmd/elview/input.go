/*
 * input.go, part of elview.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
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

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	chem "github.com/rmera/elview"
	"github.com/rmera/elview/convert"
	"github.com/rmera/elview/traj/amberold"
	"github.com/rmera/elview/traj/stf"
	"go.uber.org/zap"
)

//readInput reads the file name. An XYZ file with only one frame is a single structure, any
//other XYZ, STF or Amber file is a trajectory. top is an XYZ file with the atoms. Amber
//trajectories need it, for STF files it can be empty to use the topology in the trajectory header.
//amberBox tells whether the frames of an Amber trajectory end with a box line.
func readInput(name, top string, amberBox bool, log *zap.Logger) (convert.Input, error) {
	ext := strings.ToLower(filepath.Ext(name))
	var topology *chem.Topology
	if top != "" && ext != ".xyz" && ext != ".extxyz" {
		t, err := chem.XYZFileRead(top)
		if err != nil {
			return convert.Input{}, fmt.Errorf("reading the topology: %w", err)
		}
		topology = t.Frame(0).Topology
	}
	switch {
	case ext == ".xyz" || ext == ".extxyz":
		traj, err := chem.XYZFileRead(name)
		if err != nil {
			return convert.Input{}, err
		}
		log.Info("Read XYZ file", zap.String("file", name), zap.Int("frames", traj.NFrames()), zap.Int("atoms", traj.Frame(0).Len()))
		if traj.NFrames() == 1 {
			return convert.Single(traj.Frame(0)), nil
		}
		return convert.Framed(traj), nil
	case strings.HasPrefix(ext, ".st"):
		traj, err := stf.ReadAll(name, topology)
		if err != nil {
			return convert.Input{}, err
		}
		log.Info("Read STF trajectory", zap.String("file", name), zap.Int("frames", traj.NFrames()))
		return convert.Framed(traj), nil
	case ext == ".crd" || ext == ".mdcrd":
		if topology == nil {
			return convert.Input{}, fmt.Errorf("%s: Amber trajectories need a topology (-top)", name)
		}
		traj, err := amberold.ReadAll(name, topology, amberBox)
		if err != nil {
			return convert.Input{}, err
		}
		log.Info("Read Amber trajectory", zap.String("file", name), zap.Int("frames", traj.NFrames()), zap.Bool("box", amberBox))
		return convert.Framed(traj), nil
	}
	return convert.Input{}, fmt.Errorf("unknown format for %s, need .xyz, .stf or .crd", name)
}
