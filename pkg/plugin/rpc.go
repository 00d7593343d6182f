package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// HostPluginRPC implements the go-plugin Plugin interface for document hosts.
type HostPluginRPC struct {
	plugin.Plugin
	Impl DocumentHost
}

// Server returns an RPC server for this plugin.
func (p *HostPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &HostRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *HostPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &HostRPCClient{client: c}, nil
}

// HostRPCServer is the RPC server implementation for document hosts.
type HostRPCServer struct {
	Impl DocumentHost
}

// Snapshot implements the RPC method for reading the document.
func (s *HostRPCServer) Snapshot(_ any, resp *[]byte) error {
	data, err := s.Impl.Snapshot(context.Background())
	if err != nil {
		return err
	}
	*resp = data
	return nil
}

// Connect implements the RPC method for binding an element. Host failures
// travel in the reply so that they reach the caller verbatim.
func (s *HostRPCServer) Connect(args ConnectArgs, resp *string) error {
	if err := s.Impl.Connect(context.Background(), args); err != nil {
		*resp = err.Error()
	}
	return nil
}

// CreateStyle implements the RPC method for creating a style.
func (s *HostRPCServer) CreateStyle(args CreateStyleArgs, resp *struct {
	Style CreatedStyle
	Error string
}) error {
	style, err := s.Impl.CreateStyle(context.Background(), args)
	resp.Style = style
	if err != nil {
		resp.Error = err.Error()
	}
	return nil
}

// GetMetadata implements the RPC method for fetching host metadata.
func (s *HostRPCServer) GetMetadata(_ any, resp *HostInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// HostRPCClient is the RPC client implementation for document hosts.
type HostRPCClient struct {
	client *rpc.Client
}

// NewHostRPCClient wraps an established net/rpc client.
func NewHostRPCClient(c *rpc.Client) *HostRPCClient {
	return &HostRPCClient{client: c}
}

// Snapshot calls the remote Snapshot method.
func (c *HostRPCClient) Snapshot(_ context.Context) ([]byte, error) {
	var data []byte
	err := c.client.Call("Plugin.Snapshot", new(any), &data)
	return data, err
}

// Connect calls the remote Connect method.
func (c *HostRPCClient) Connect(_ context.Context, args ConnectArgs) error {
	var errMsg string
	if err := c.client.Call("Plugin.Connect", args, &errMsg); err != nil {
		return err
	}
	if errMsg != "" {
		return &RPCError{Message: errMsg}
	}
	return nil
}

// CreateStyle calls the remote CreateStyle method.
func (c *HostRPCClient) CreateStyle(_ context.Context, args CreateStyleArgs) (CreatedStyle, error) {
	var resp struct {
		Style CreatedStyle
		Error string
	}
	if err := c.client.Call("Plugin.CreateStyle", args, &resp); err != nil {
		return CreatedStyle{}, err
	}
	if resp.Error != "" {
		return CreatedStyle{}, &RPCError{Message: resp.Error}
	}
	return resp.Style, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *HostRPCClient) GetMetadata() HostInfo {
	var info HostInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return HostInfo{}
	}
	return info
}

// RPCError is an error reported by the host.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
