package types

import (
	"fmt"
	"strings"
)

// ValidateFeeOptions checks that the fee fields form a consistent set: legacy gasPrice alone,
// both EIP-1559 fields with maxFeePerGas >= maxPriorityFeePerGas, or none at all.
func ValidateFeeOptions(gasPrice, maxFeePerGas, maxPriorityFeePerGas *BigUInt) error {
	if gasPrice != nil {
		var extra []string
		if maxFeePerGas != nil {
			extra = append(extra, "maxFeePerGas")
		}
		if maxPriorityFeePerGas != nil {
			extra = append(extra, "maxPriorityFeePerGas")
		}
		if len(extra) > 0 {
			return fmt.Errorf("%w: gasPrice + (%s) not allowed", ErrInvalidPayload, strings.Join(extra, ", "))
		}
		return nil
	}

	switch {
	case maxFeePerGas != nil && maxPriorityFeePerGas != nil:
		if maxFeePerGas.Cmp(maxPriorityFeePerGas) < 0 {
			return fmt.Errorf("%w: maxFeePerGas should be greater or equal to maxPriorityFeePerGas", ErrInvalidPayload)
		}
	case maxFeePerGas != nil:
		return fmt.Errorf("%w: maxFeePerGas without maxPriorityFeePerGas specified", ErrInvalidPayload)
	case maxPriorityFeePerGas != nil:
		return fmt.Errorf("%w: maxPriorityFeePerGas without maxFeePerGas specified", ErrInvalidPayload)
	}
	return nil
}

// ValidatePayload rejects payloads that must not leave the client. A speed tier replaces
// explicit fee fields, so the two cannot be combined.
func ValidatePayload(payload *RelayerTransactionPayload) error {
	if payload == nil {
		return fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
	}
	if err := ValidateFeeOptions(payload.GasPrice, payload.MaxFeePerGas, payload.MaxPriorityFeePerGas); err != nil {
		return err
	}
	if payload.Speed != "" {
		if !payload.Speed.IsValid() {
			return fmt.Errorf("%w: unknown speed %q", ErrInvalidPayload, payload.Speed)
		}
		if payload.HasFeeFields() {
			return fmt.Errorf("%w: speed cannot be combined with explicit fee fields", ErrInvalidPayload)
		}
	}
	if payload.PrivateMode != "" && !payload.PrivateMode.IsValid() {
		return fmt.Errorf("%w: unknown private mode %q", ErrInvalidPayload, payload.PrivateMode)
	}
	return nil
}
