package plugin

// ConnectArgs asks a host to bind an element. ElementType is "fill",
// "stroke" or "typography"; PaintIndex defaults to 0 for paints.
type ConnectArgs struct {
	NodeID      string `json:"nodeId"`
	StyleID     string `json:"styleId"`
	ElementType string `json:"elementType"`
	PaintIndex  *int   `json:"paintIndex,omitempty"`
}

// CreateStyleArgs asks a host to create a style from an element.
type CreateStyleArgs struct {
	NodeID      string `json:"nodeId"`
	ElementType string `json:"elementType"`
	StyleName   string `json:"styleName"`
	PaintIndex  *int   `json:"paintIndex,omitempty"`
}

// CreatedStyle identifies a style made by CreateStyle.
type CreatedStyle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HostInfo contains metadata about a host.
type HostInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"`
}
