package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Params holds the module's role addresses. Both default to empty, which
// rejects every privileged call until governance sets them.
type Params struct {
	EmergencyAdmin string `json:"emergency_admin"`
	TreasuryAdmin  string `json:"treasury_admin"`
}

// DefaultParams returns params with no admins configured.
func DefaultParams() Params {
	return Params{}
}

// Validate checks that configured admin addresses parse.
func (p Params) Validate() error {
	if p.EmergencyAdmin != "" {
		if _, err := sdk.AccAddressFromBech32(p.EmergencyAdmin); err != nil {
			return err
		}
	}
	if p.TreasuryAdmin != "" {
		if _, err := sdk.AccAddressFromBech32(p.TreasuryAdmin); err != nil {
			return err
		}
	}
	return nil
}
