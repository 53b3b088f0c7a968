// Package config provides the configuration for the path editor.
//
// Configuration is a single TOML file. Every setting has a built-in
// default, so a missing file, or a file that only sets a few keys, is
// valid. Unknown keys are rejected so typos do not go unnoticed.
//
//	[mouse]
//	double_click_ms = 400
//	double_click_distance = 4.0
//	drag_threshold = 2.0
//
//	[select]
//	primary_modifier = "meta"   # or "ctrl"
//	hit_tolerance = 6.0
//
//	[marquee]
//	fill = "#DDDDDD55"
//	stroke = "steelblue"        # hex or an SVG color name
//
//	[keys]
//	undo = "Ctrl+Z"
//	redo = "Ctrl+Shift+Z"
//
//	[history]
//	max_entries = 256
//
//	[log]
//	level = "info"
//	file = ""
//
// # Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := mouse.New(cfg.MouseSettings())
//
// The watcher subpackage reports changes to the file for live reload.
package config
