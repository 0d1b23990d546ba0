package common

type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkGhostnet Network = "ghostnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet:  {},
	NetworkGhostnet: {},
}

var defaultNodeURLs = map[Network]string{
	NetworkMainnet:  "https://rpc.tzbeta.net",
	NetworkGhostnet: "https://rpc.ghostnet.teztnets.com",
}

func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

// DefaultNodeURL returns a public RPC endpoint for the network, used when no node url is configured.
func (n Network) DefaultNodeURL() string {
	return defaultNodeURLs[n]
}

func (n Network) String() string {
	return string(n)
}
