// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package config loads the application configuration from a JSON file.
// The configuration names the two external parser commands, the default
// base and home paths used to resolve path literals, the results store,
// and debug flags. Missing files yield the default configuration.
package config
