package wallet

import "fmt"

// NetworkConfig defines the parameters of a network an identity lives on.
// ChainID is the integer recorded in envelopes; Mainnet selects the address
// encoding.
type NetworkConfig struct {
	Name    string `json:"name"`
	ChainID int64  `json:"chain_id"`
	Mainnet bool   `json:"mainnet"`
}

// Predefined network configurations.
var (
	MainNet = NetworkConfig{Name: "mainnet", ChainID: 1, Mainnet: true}

	TestNet = NetworkConfig{Name: "testnet", ChainID: 2}

	TeraTestNet = NetworkConfig{Name: "teratestnet", ChainID: 3}

	RegTest = NetworkConfig{Name: "regtest", ChainID: 4}
)

// predefined maps network names to their configs.
var predefined = map[string]*NetworkConfig{
	"mainnet":     &MainNet,
	"testnet":     &TestNet,
	"teratestnet": &TeraTestNet,
	"regtest":     &RegTest,
}

// GetNetwork returns a predefined network by name.
func GetNetwork(name string) (*NetworkConfig, error) {
	if net, ok := predefined[name]; ok {
		return net, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
}

// GetNetworkByID returns the predefined network with the given chain id.
func GetNetworkByID(id int64) (*NetworkConfig, error) {
	for _, net := range predefined {
		if net.ChainID == id {
			return net, nil
		}
	}
	return nil, fmt.Errorf("%w: chain id %d", ErrInvalidNetwork, id)
}
