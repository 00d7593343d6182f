// Package plugin is the public API for tether document hosts.
//
// A document host is an external program that owns a live design document,
// for example a bridge to a design tool. tether launches it with go-plugin,
// reads document snapshots from it and sends binding requests back. Hosts
// import this package and call Serve.
package plugin

import (
	"encoding/json"
	"os"

	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion is the host API version.
	// Format: MAJOR.MINOR.PATCH. MAJOR changes are incompatible.
	ProtocolVersion = "1.0.0"

	// PluginName is the name the host plugin is registered and dispensed under.
	PluginName = "host"
)

// Handshake is the go-plugin handshake shared by tether and its hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1, // Major version from ProtocolVersion
	MagicCookieKey:   "TETHER_PLUGIN_MAGIC",
	MagicCookieValue: "tether_design_document",
}

// PluginProtocolGoPlugin identifies hosts speaking go-plugin net/rpc.
const PluginProtocolGoPlugin = "go-plugin"

// InfoFlag makes a host print its HostInfo as JSON and exit instead of
// serving. tether uses it to check compatibility before launching the host.
const InfoFlag = "--host-info"

// Serve runs impl as a document host. It blocks until tether disconnects.
func Serve(impl DocumentHost) {
	if len(os.Args) > 1 && os.Args[1] == InfoFlag {
		_ = json.NewEncoder(os.Stdout).Encode(impl.GetMetadata())
		return
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &HostPluginRPC{Impl: impl},
		},
	})
}
