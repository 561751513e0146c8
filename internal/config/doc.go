// Package config loads the platekb command line configuration.
//
// Settings are read in three layers, later layers overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. a TOML or YAML file, chosen by extension
//  3. PLATEKB_* environment variables
//
// A missing file is not an error. Example TOML:
//
//	[keyboard]
//	type = "CIVIL"
//
//	[plate]
//	number_type = "AUTO_DETECT"
//
//	[output]
//	format = "text"
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[script]
//	path = "rules.lua"
package config
