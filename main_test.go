// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"testing"

	"github.com/Applied-Materials-Technology/sloth/fem"
	"github.com/stretchr/testify/require"
)

func Test_main01(tst *testing.T) {

	// run with command line settings
	dir := tst.TempDir()
	rootCmd.SetArgs([]string{"run", "-w", "2", "-o", dir, "--encoder", "json", "--alias", "cli", "fem/data/points01.sim"})
	require.NoError(tst, rootCmd.Execute())
	sum, err := fem.ReadSum(dir, "points01-cli", "json")
	require.NoError(tst, err)
	require.Equal(tst, 6, sum.Npts)
	require.False(tst, sum.Dual)
	require.FileExists(tst, filepath.Join(dir, "points01-cli_ips.json"))

	// tables
	rootCmd.SetArgs([]string{"table", "-o", dir, "fem/data/points01.sim"})
	require.NoError(tst, rootCmd.Execute())
	require.FileExists(tst, filepath.Join(dir, "points01-cli_0_0.txt"))
	require.FileExists(tst, filepath.Join(dir, "points01-cli_2_1.txt"))

	// derivative check
	rootCmd.SetArgs([]string{"check", "--step", "1e-9", "fem/data/points01.sim"})
	require.NoError(tst, rootCmd.Execute())

	// damage error
	rootCmd.SetArgs([]string{"run", "--nosave", "fem/data/points02.sim"})
	require.Error(tst, rootCmd.Execute())

	// missing file
	rootCmd.SetArgs([]string{"run", "fem/data/unknown.sim"})
	require.Error(tst, rootCmd.Execute())
}
