// Copyright (c) 2023 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package confbox is a hierarchical configuration store.

A [Config] owns one ordered configuration tree. Sources are decoded by the
codec of their format (INI, JSON, JSON5, NEON, TOML, YAML, or a configuration
script) and merged into the tree one after another, so a later source takes
precedence over the sources before it:

	config := confbox.New()
	if err := config.LoadFiles([]string{"base.yaml", "local.json"}, ""); err != nil {
		// Handle error here.
	}
	port := config.GetInt("server.port")

Nested mappings are merged key by key down to the merge depth (3 by default),
below which a later mapping replaces the earlier one as a whole.

Values are addressed by dotted key paths, read with typed getters, or decoded
into structs with [Config.Unmarshal]. The tree can be exported back into
any format that supports encoding with [Config.Export].

There is a default Config accessible through top-level functions
(such as [Unmarshal] and [Get]) that call the corresponding Config methods.
*/
package confbox
