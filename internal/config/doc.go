// Package config handles loading and parsing the quoter configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/quoter/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/quoter/config.toml
//   - Data directory: ~/.local/share/quoter (holds quotes.json)
//   - Log file: <data_dir>/quoter.log
//   - Sync: disabled (no sync_url)
//   - Poll interval: 30 seconds
//   - Mock endpoint listen address: 127.0.0.1:7489
//
// # TOML Format
//
//	data_dir = "~/.local/share/quoter"
//	sync_url = "http://127.0.0.1:7489"
//	poll_seconds = 30
//	log_file = "~/.local/share/quoter/quoter.log"
//	serve_addr = "127.0.0.1:7489"
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Error Handling
//
//   - Missing file: not an error, defaults are returned with FileMissing set
//   - Permission denied: "open config: ..."
//   - Invalid TOML: "parse config: ..."
//
// Unlike prefs, a broken config file is fatal: silently ignoring a sync_url
// typo would leave the user wondering why nothing syncs.
package config
