// Copyright (c) 2025, Coral Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/coralui/coral/base/logx"
	"github.com/coralui/coral/colorpass"
	"github.com/pelletier/go-toml/v2"
)

// DisplaySettings are the user-controllable color management
// settings, loaded from a TOML file in the user config directory.
// Zero values leave the corresponding display-reported value in
// effect.
type DisplaySettings struct {

	// Primaries forces the ITU-T H.273 color primaries code sent to
	// the conversion pass, overriding what the display reports.
	Primaries int `toml:"primaries,omitempty"`

	// TransferFunction forces the ITU-T H.273 transfer characteristics
	// code, overriding what the display reports.
	TransferFunction int `toml:"transfer-function,omitempty"`

	// SDRWhiteLevel forces the SDR white level in nits.
	SDRWhiteLevel float32 `toml:"sdr-white-level,omitempty"`

	// MinLuminance and MaxLuminance force the display luminance range
	// in nits. MaxLuminance 0 disables range clamping.
	MinLuminance float32 `toml:"min-luminance,omitempty"`
	MaxLuminance float32 `toml:"max-luminance,omitempty"`
}

// TheSettings is the global display settings instance, loaded by
// [LoadSettings] at startup.
var TheSettings DisplaySettings

// SettingsFilename returns the full path of the display settings
// file.
func SettingsFilename() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "coral", "display.toml")
}

// LoadSettings loads [TheSettings] from [SettingsFilename]. A missing
// file is not an error and leaves the settings zero.
func LoadSettings() error {
	data, err := os.ReadFile(SettingsFilename())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := toml.Unmarshal(data, &TheSettings); err != nil {
		return err
	}
	logx.PrintlnDebug("loaded display settings:", SettingsFilename())
	return nil
}

// SaveSettings writes [TheSettings] to [SettingsFilename], creating
// the directory if needed.
func SaveSettings() error {
	fnm := SettingsFilename()
	if err := os.MkdirAll(filepath.Dir(fnm), 0750); err != nil {
		return err
	}
	data, err := toml.Marshal(&TheSettings)
	if err != nil {
		return err
	}
	return os.WriteFile(fnm, data, 0644)
}

// Apply overlays the non-zero settings onto the given display state.
func (st *DisplaySettings) Apply(ds *colorpass.DisplayState) {
	if st.Primaries != 0 {
		ds.Primaries = st.Primaries
	}
	if st.TransferFunction != 0 {
		ds.TransferFunction = st.TransferFunction
	}
	if st.SDRWhiteLevel > 0 {
		ds.SDRWhiteLevel = st.SDRWhiteLevel
	}
	if st.MaxLuminance > 0 {
		ds.MinLuminance = st.MinLuminance
		ds.MaxLuminance = st.MaxLuminance
	}
}
