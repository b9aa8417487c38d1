package types

import "errors"

var (
	// ErrInitialization is returned when the credential exchange fails before any API client exists.
	ErrInitialization = errors.New("relayer client initialization failed")

	// ErrAuthentication is returned when the platform rejects a freshly renewed credential.
	ErrAuthentication = errors.New("relayer authentication failed")

	// ErrAuthorizationMismatch is returned when a request names a sender other than the relayer.
	ErrAuthorizationMismatch = errors.New("sender does not match relayer address")

	ErrMethodNotSupported = errors.New("method not supported")

	// ErrInvalidPayload is returned for transaction payloads with inconsistent fee fields.
	ErrInvalidPayload = errors.New("invalid transaction payload")

	// ErrEstimation wraps a failed eth_estimateGas sub-call issued while sending a transaction.
	ErrEstimation = errors.New("error estimating gas for transaction")

	ErrInvalidCredentials = errors.New("missing credentials for creating a relayer instance")

	ErrRelayerGroupNotSupported = errors.New("relayer group is not supported")

	ErrSubscriptionsNotSupported = errors.New("base provider does not support subscriptions")
)
