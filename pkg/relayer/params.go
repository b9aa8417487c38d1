package relayer

import (
	"fmt"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// RelayerParams is one of *ApiRelayerParams or *ActionRelayerParams
type RelayerParams interface {
	validate() error
}

// ApiRelayerParams authenticates against the relay signer API with a relayer API key
type ApiRelayerParams struct {
	ApiKey    string
	ApiSecret string
}

func (p *ApiRelayerParams) validate() error {
	if p.ApiKey == "" || p.ApiSecret == "" {
		return fmt.Errorf("%w: api key and secret are required", types.ErrInvalidCredentials)
	}
	return nil
}

// ActionRelayerParams carries the temporary credentials injected into an action
type ActionRelayerParams struct {
	Credentials string
	RelayerARN  string
}

func (p *ActionRelayerParams) validate() error {
	if p.Credentials == "" || p.RelayerARN == "" {
		return fmt.Errorf("%w: action credentials and relayer ARN are required", types.ErrInvalidCredentials)
	}
	return nil
}
