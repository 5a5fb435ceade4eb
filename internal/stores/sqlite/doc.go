// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package sqlite persists conformance runs and their per-file outcomes.
// Each run is identified by a UUID and records when it started and the
// base and home paths it resolved against; each result records the input
// path, its outcome category, and detail text for failures. Storing runs
// lets the driver diff outcomes across producer or normalizer changes.
package sqlite
