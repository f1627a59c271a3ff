// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Catalog struct {
	// FirstPage is the page size of the initial catalog load.
	FirstPage int `koanf:"firstpage"`

	// MorePage is the page size of subsequent catalog loads.
	MorePage int `koanf:"morepage"`

	// SearchLimit caps the number of search results.
	SearchLimit int `koanf:"searchlimit"`
}

type Config struct {
	config.Common

	// Catalog is the configuration for the catalog engine.
	Catalog Catalog `koanf:"catalog"`
}
