// Package config loads and persists the editor settings file.
//
// The file is JSON with two sections: "editor" holds the interaction
// tunables (hit tolerance, handle radius, minimum shape size, history
// limit) and "style" the default shape style. Missing fields fall back to
// their defaults, so a partial file is always valid. A Watcher reloads
// the file on change and notifies the application.
package config
