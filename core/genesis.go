package core

import (
	"connectsphere/core/genesis"
	"connectsphere/core/state"
	"connectsphere/native/common"
	"connectsphere/observability"
)

// InitGenesis seeds empty state from spec in a single atomic operation.
func (n *Node) InitGenesis(spec *genesis.GenesisSpec) error {
	err := n.apply(moduleSystem, "genesis", [20]byte{}, func(tx *txn) error {
		if err := genesis.Apply(spec, tx.state, tx.ledger, tx.registry); err != nil {
			return err
		}
		return tx.state.SetStateVersion(state.StateVersion)
	})
	if err != nil {
		return err
	}
	for _, module := range []string{common.ModuleToken, common.ModuleContent} {
		observability.Operations().SetPause(module, n.IsPaused(module))
	}
	return nil
}

// GenesisApplied reports whether state already carries a genesis.
func (n *Node) GenesisApplied() (bool, error) {
	var applied bool
	err := n.view(func(tx *txn) error {
		var err error
		applied, err = genesis.Applied(tx.state)
		return err
	})
	return applied, err
}
